package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_lock/internal/repository/base"
)

type ConfigRepository struct {
	*base.Repository
}

func NewConfigRepository(db base.DBTX) *ConfigRepository {
	return &ConfigRepository{Repository: base.NewRepository(db)}
}

// Set upserts a config value.
func (r *ConfigRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO config ("key", value)
		VALUES ($1, $2)
		ON CONFLICT ("key") DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.ExecAffected(ctx, query, key, value); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}

	return nil
}

func (r *ConfigRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.QueryRow(ctx, `SELECT value FROM config WHERE "key" = $1`, key).Scan(&value)
	if base.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %s: %w", key, err)
	}

	return value, true, nil
}
