package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/target/admin-panel/internal/domain/model"
)

// SettingsRepo stores the single settings row.
type SettingsRepo struct {
	DB *sql.DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db}
}

// Get returns the saved settings, or model.DefaultSettings when the row does not exist yet.
func (r *SettingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	s, err := queryOne[model.Settings](ctx, r.DB, `SELECT theme, font, logo, updated_at FROM settings WHERE id`)
	if errors.Is(err, pgx.ErrNoRows) {
		def := model.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Put upserts the settings row.
func (r *SettingsRepo) Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s, err := queryOne[model.Settings](ctx, r.DB, `
		INSERT INTO settings (id, theme, font, logo, updated_at)
		VALUES (TRUE, $1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET theme = EXCLUDED.theme, font = EXCLUDED.font, logo = EXCLUDED.logo, updated_at = now()
		RETURNING theme, font, logo, updated_at`,
		req.Theme, req.Font, req.Logo,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return s, nil
}
