package postgres

import (
	"context"

	"github.com/huynhmanh2003/RAJI-BE/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, err
	}

	return pool, nil
}
