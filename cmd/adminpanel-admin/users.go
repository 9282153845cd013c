package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/target/admin-panel/internal/adapters/passwords"
	"github.com/target/admin-panel/internal/bootstrap"
	"github.com/target/admin-panel/internal/data"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/service"
)

type createUserOptions struct {
	Username string
	Email    string
	Password string
	Name     string
	Role     string
	Timeout  time.Duration
}

func runCreateUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateUserFlags(args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		if opts.Password, err = readPassword(os.Stdin, os.Stderr); err != nil {
			return err
		}
	}
	req, err := opts.request()
	if err != nil {
		return err
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	ctx, cancel := timeoutContext(cmdCtx, opts.Timeout)
	defer cancel()

	users := service.NewUserService(service.UserServiceOptions{
		Repo:   data.NewUserRepo(db),
		Hasher: passwords.BcryptHasher{},
		Logger: cmdCtx.Logger,
	})
	user, err := users.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return writef(os.Stdout, "created user %s (%s) with role %s\n", user.Username, user.ID, user.Role)
}

func parseCreateUserFlags(args []string) (createUserOptions, error) {
	fs := newFlagSet("create-user")
	opts := createUserOptions{}
	fs.StringVar(&opts.Username, "username", "", "Login name (required)")
	fs.StringVar(&opts.Email, "email", "", "Email address (required)")
	fs.StringVar(&opts.Password, "password", "", "Password; read from stdin when omitted")
	fs.StringVar(&opts.Name, "name", "", "Display name; defaults to the username")
	fs.StringVar(&opts.Role, "role", string(domainauth.RoleAdmin), "One of admin, editor, viewer")
	fs.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Maximum duration to wait for the insert")
	if err := fs.Parse(args); err != nil {
		return createUserOptions{}, err
	}
	if err := requirePositive(opts.Timeout); err != nil {
		return createUserOptions{}, err
	}
	if strings.TrimSpace(opts.Username) == "" || strings.TrimSpace(opts.Email) == "" {
		return createUserOptions{}, errors.New("--username and --email are required")
	}
	return opts, nil
}

// request builds and validates the create request.
func (o createUserOptions) request() (*model.CreateUserRequest, error) {
	role, ok := domainauth.ParseRole(o.Role)
	if !ok {
		return nil, fmt.Errorf("invalid --role %q", o.Role)
	}
	name := o.Name
	if strings.TrimSpace(name) == "" {
		name = o.Username
	}
	req := &model.CreateUserRequest{
		Username: o.Username,
		Email:    o.Email,
		Password: o.Password,
		Name:     name,
		Role:     role,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if err := write(prompt, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
