package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmespath-community/go-jmespath"
	"github.com/spf13/cobra"
	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/bootstrap"
	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/localstore"
	"github.com/target/admin-panel/internal/router"
	"github.com/target/admin-panel/internal/state"
)

// app is the per-invocation wiring shared by every command.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// flags
	apiURL    string
	stateFile string
	query     string
	verbose   bool

	cfg     config.CLIConfig
	logger  *slog.Logger
	api     *client.Client
	session *state.Session
	routes  *router.Router
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out, errOut: errOut, routes: router.Default()}

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Manage the admin panel from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "API base URL (overrides ADMINCTL_API_URL)")
	pf.StringVar(&a.stateFile, "state-file", "", "Session file (overrides ADMINCTL_STATE_FILE)")
	pf.StringVarP(&a.query, "query", "q", "", "JMESPath expression applied to the JSON output")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Log requests and state changes")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.usersCmd(),
		a.templatesCmd(),
		a.menusCmd(),
		a.formsCmd(),
		a.settingsCmd(),
		a.profileCmd(),
		a.passwordCmd(),
	)
	return root
}

// setup loads configuration, opens the session file and restores the session.
func (a *app) setup() error {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: bootstrap.ParseLogLevel(level)}))

	cfg, err := bootstrap.LoadCLIConfig()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.stateFile != "" {
		cfg.StateFile = a.stateFile
	}
	if cfg.StateFile == "" {
		if cfg.StateFile, err = localstore.DefaultPath(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	store := localstore.New(cfg.StateFile)
	// The session is the client's token source, so it is built first.
	var tokens client.TokenFunc = func() string { return a.session.Token() }
	clientCfg := client.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout, Tokens: tokens, Logger: a.logger}
	if cfg.BreakerEnabled {
		clientCfg.Breaker = &client.BreakerConfig{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerOpenTimeout,
		}
	}
	if a.api, err = client.New(clientCfg); err != nil {
		return err
	}
	a.session = state.NewSession(a.api, store, a.logger)
	if a.verbose {
		a.session.Subscribe(func(s state.SessionState) {
			a.logger.Debug("session state", "authenticated", s.Authenticated, "loading", s.Loading, "error", deref(s.Error))
		})
	}
	return a.session.CheckAuth()
}

// guard resolves path for the current session and refuses redirected routes.
func (a *app) guard(path string) error {
	snap := a.session.Snapshot()
	p := router.Principal{Token: snap.Token}
	if snap.User != nil {
		p.Role = snap.User.Role
	}
	d := a.routes.Resolve(path, p)
	switch d.Redirect {
	case "":
		if d.Route.Pattern == router.PathNotFound {
			return fmt.Errorf("no view for %s", path)
		}
		return nil
	case router.PathLogin:
		return errors.New("not signed in; run `adminctl login` first")
	case router.PathUnauthorized:
		return fmt.Errorf("your role (%s) may not open %s", p.Role, path)
	default:
		return fmt.Errorf("%s redirects to %s", path, d.Redirect)
	}
}

// render prints v as indented JSON, filtered through --query when set.
func (a *app) render(v any) error {
	if a.query != "" {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		if v, err = jmespath.Search(a.query, doc); err != nil {
			return fmt.Errorf("query %q: %w", a.query, err)
		}
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt reads one line from stdin, used for secrets not given as flags.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.errOut, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// holderError prefers the holder's display message over the raw error.
func holderError(err error, msg *string) error {
	if err == nil || msg == nil {
		return err
	}
	return errors.New(*msg)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
