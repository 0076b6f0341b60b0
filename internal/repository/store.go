package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_lock/internal/repository/base"
	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewRepos binds all repositories to one connection or transaction.
func NewRepos(db base.DBTX, logger *zap.Logger) service.Repos {
	return service.Repos{
		Events:    NewEventRepository(db),
		Years:     NewAcademicYearRepository(db),
		Occupancy: NewOccupancyRepository(db, logger),
		Config:    NewConfigRepository(db),
	}
}

// TxManager implements service.Transactor on top of a pgx pool.
type TxManager struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewTxManager(pool *pgxpool.Pool, logger *zap.Logger) *TxManager {
	return &TxManager{
		pool:   pool,
		logger: logger,
	}
}

func (m *TxManager) InTx(ctx context.Context, fn func(service.Repos) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewRepos(tx, m.logger)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
