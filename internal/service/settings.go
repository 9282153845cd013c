package service

import (
	"context"

	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/domain/model"
)

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Repo core.SettingsRepository
}

// SettingsService reads and replaces the panel settings singleton.
type SettingsService struct {
	repo core.SettingsRepository
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	if opts.Repo == nil {
		panic("service: SettingsService requires Repo")
	}
	return &SettingsService{repo: opts.Repo}
}

// Get returns the current settings, or defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.Get(ctx)
}

// Put validates and replaces the settings.
func (s *SettingsService) Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Put(ctx, req)
}
