package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"salesledger/internal/core/apperror"
	"salesledger/internal/domain/settings"
)

// SettingsRepo implements settings.Repository. The sys_settings table holds
// exactly one row, keyed by a constant.
type SettingsRepo struct {
	txManager *TxManager
}

var _ settings.Repository = (*SettingsRepo)(nil)

// NewSettingsRepo creates a settings repository.
func NewSettingsRepo(txManager *TxManager) *SettingsRepo {
	return &SettingsRepo{txManager: txManager}
}

// Get retrieves the settings row.
func (r *SettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	var s settings.Settings
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &s, `
		SELECT exchange_rate, updated_at
		FROM sys_settings
		WHERE singleton = true
	`)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("settings", "singleton")
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert stores the settings row, creating it if absent.
func (r *SettingsRepo) Upsert(ctx context.Context, s *settings.Settings) error {
	_, err := r.txManager.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_settings (singleton, exchange_rate, updated_at)
		VALUES (true, $1, $2)
		ON CONFLICT (singleton) DO UPDATE
		SET exchange_rate = EXCLUDED.exchange_rate,
		    updated_at = EXCLUDED.updated_at
	`, s.ExchangeRate, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
