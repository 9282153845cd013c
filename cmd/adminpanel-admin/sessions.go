package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	redisadapter "github.com/target/admin-panel/internal/adapters/redis"
	"github.com/target/admin-panel/internal/bootstrap"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/util"
)

type revokeOptions struct {
	UserID string
	All    bool
	Yes    bool
}

func timeoutContext(cmdCtx *commandContext, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmdCtx.Ctx, timeout)
}

// withSessions connects to Redis and hands fn the session store.
func withSessions(cmdCtx *commandContext, fn func(context.Context, *redisadapter.SessionStore) error) error {
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: cmdCtx.Config.Redis, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func(c redis.UniversalClient) {
		if cerr := c.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}(client)

	ctx, cancel := timeoutContext(cmdCtx, defaultRedisTimeout)
	defer cancel()
	return fn(ctx, redisadapter.NewSessionStore(client))
}

func runListSessions(cmdCtx *commandContext, _ []string) error {
	return withSessions(cmdCtx, func(ctx context.Context, store *redisadapter.SessionStore) error {
		sessions, err := store.List(ctx)
		if err != nil {
			return err
		}
		return renderSessions(os.Stdout, sessions, time.Now())
	})
}

func renderSessions(w io.Writer, sessions []domainauth.Session, now time.Time) error {
	if len(sessions) == 0 {
		return writeln(w, "(no sessions found)")
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].IssuedAt.Before(sessions[j].IssuedAt) })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "USER\tUSERNAME\tROLE\tISSUED\tEXPIRES\tREMAINING"); err != nil {
		return err
	}
	for _, s := range sessions {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.UserID, s.Username, s.Role,
			s.IssuedAt.UTC().Format(time.RFC3339), s.ExpiresAt.UTC().Format(time.RFC3339),
			util.FormatRemaining(s.ExpiresAt.Sub(now))); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\nTotal sessions: %d\n", len(sessions))
}

func runRevokeSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}
	target := fmt.Sprintf("user %q", opts.UserID)
	if opts.All {
		target = "every user"
	}
	if confirmErr := confirmAction(os.Stdin, os.Stdout, confirmOptions{Yes: opts.Yes, Target: target}, "revoke sessions"); confirmErr != nil {
		return confirmErr
	}

	return withSessions(cmdCtx, func(ctx context.Context, store *redisadapter.SessionStore) error {
		n, err := store.Revoke(ctx, opts.UserID)
		if err != nil {
			return err
		}
		cmdCtx.Logger.Info("sessions revoked", "count", n, "user_id", opts.UserID)
		return nil
	})
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := newFlagSet("revoke-sessions")
	opts := revokeOptions{}
	fs.StringVar(&opts.UserID, "user-id", "", "Revoke only this user's sessions")
	fs.BoolVar(&opts.All, "all", false, "Revoke every session")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	if (opts.UserID == "") == !opts.All {
		return revokeOptions{}, errors.New("exactly one of --user-id or --all is required")
	}
	return opts, nil
}
