package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/config"
	"github.com/dmitrijs2005/noteapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/noteapp/internal/client/session"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/dmitrijs2005/noteapp/internal/cryptox"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

// openStore builds the session store on the configured backend. The
// returned func closes the backend.
func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (*session.Store, func() error, error) {
	var (
		repo    kv.Repository
		closeFn func() error
	)

	switch cfg.StorageBackend {
	case config.StorageRedis:
		rc, err := kv.ConnectRedis(ctx, kv.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		repo, closeFn = kv.NewRedisRepository(rc, cfg.RedisPrefix), rc.Close

	default:
		db, err := kv.OpenSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
		}
		r := kv.NewSQLiteRepository(db)
		if n, err := r.PurgeExpired(ctx); err != nil {
			log.Warn(ctx, "purge expired records", "error", err)
		} else if n > 0 {
			log.Debug(ctx, "purged expired records", "count", n)
		}
		repo, closeFn = r, db.Close
	}

	if cfg.SessionKeyFile == "" {
		return session.NewStore(repo, nil, log), closeFn, nil
	}

	key, err := cryptox.LoadOrCreateKey(cfg.SessionKeyFile)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("session key: %w", err)
	}
	sealer, err := cryptox.NewSealer(key)
	common.WipeByteArray(key)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("session key: %w", err)
	}
	return session.NewStore(repo, sealer, log), closeFn, nil
}
