package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// Counter is the slice of a repository the dashboard needs.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// DashboardServiceOptions groups the per-resource counters.
type DashboardServiceOptions struct {
	Users     Counter
	Templates Counter
	Menus     Counter
	Forms     Counter

	// Cache, when set with a positive CacheTTL, memoizes Stats.
	Cache    core.CacheRepository
	CacheTTL time.Duration
	Logger   *slog.Logger
}

const dashboardCacheKey = "dashboard:stats"

// DashboardService aggregates record counts.
type DashboardService struct {
	opts DashboardServiceOptions
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Users == nil || opts.Templates == nil || opts.Menus == nil || opts.Forms == nil {
		panic("service: DashboardService requires all counters")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &DashboardService{opts: opts}
}

func (s *DashboardService) cached() bool { return s.opts.Cache != nil && s.opts.CacheTTL > 0 }

// Stats returns the record counts, served from the cache while it is fresh.
// Cache failures are logged and fall through to the database.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if !s.cached() {
		return s.count(ctx)
	}
	if raw, err := s.opts.Cache.Get(ctx, dashboardCacheKey); err != nil {
		s.opts.Logger.WarnContext(ctx, "dashboard cache read failed", "error", err)
	} else if raw != nil {
		var stats model.DashboardStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.count(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(stats)
	if err == nil {
		err = s.opts.Cache.Set(ctx, dashboardCacheKey, raw, s.opts.CacheTTL)
	}
	if err != nil {
		s.opts.Logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}
	return stats, nil
}

// Invalidate drops the cached counts so the next Stats call recounts.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if !s.cached() {
		return nil
	}
	_, err := s.opts.Cache.Delete(ctx, dashboardCacheKey)
	return err
}

// count queries every resource concurrently. The first failure cancels the rest.
func (s *DashboardService) count(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	count := func(name string, c Counter, dst *int) {
		g.Go(func() error {
			n, err := c.Count(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("users", s.opts.Users, &stats.Users)
	count("templates", s.opts.Templates, &stats.Templates)
	count("menus", s.opts.Menus, &stats.Menus)
	count("forms", s.opts.Forms, &stats.Forms)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
