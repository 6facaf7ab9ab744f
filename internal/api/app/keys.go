package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/replay"
	"github.com/rutsatz/algamoney-api/internal/api/store"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
)

// InitSigner builds the HS256 signer/verifier from the shared secret. The
// secret never leaves the process and is not logged.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.HS256, error) {
	hs, err := jwtx.NewHS256([]byte(cfg.SigningSecret), jwtx.HS256Options{Issuer: cfg.Issuer})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signer: %w", err)
	}

	logger.Info("token signer ready", "algorithm", hs.Alg(), "issuer", cfg.Issuer)
	return hs, nil
}

// replayStore is the consumed refresh marker backend plus its lifecycle.
// ping and close are nil for in-process backends.
type replayStore struct {
	store.ConsumedTokens
	ping  func(context.Context) error
	close func() error
}

func (r replayStore) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// initReplayStore selects where consumed refresh markers live.
//
// Backends:
//   - "sqlite": the main database. Survives restarts, single instance.
//   - "memory": go-cache in process. Lost on restart, single instance.
//   - "redis": shared across instances.
func initReplayStore(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (replayStore, error) {
	switch cfg.ReplayStore {
	case ReplayStoreMemory:
		logger.Info("replay store ready", "backend", ReplayStoreMemory)
		return replayStore{ConsumedTokens: replay.NewMemory()}, nil

	case ReplayStoreRedis:
		r := replay.NewRedis(cfg.RedisAddr, cfg.RedisDB)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return replayStore{}, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}

		logger.Info("replay store ready", "backend", ReplayStoreRedis, "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return replayStore{ConsumedTokens: r, ping: r.Ping, close: r.Close}, nil

	default:
		logger.Info("replay store ready", "backend", ReplayStoreSQLite)
		return replayStore{ConsumedTokens: db.ConsumedTokens()}, nil
	}
}
