package app

import (
	"context"

	"github.com/rostersync/rostersync/internal/store/firebase"
	"github.com/rostersync/rostersync/internal/store/redis"
	"github.com/rostersync/rostersync/internal/store/sqlite"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/store"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

// Store backend names.
const (
	StoreFirebase = "firebase"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// openStore builds the configured backend. The returned close function
// releases it; for the memory store it writes the snapshot back.
func openStore(ctx context.Context, cfg *Config) (store.Backend, func() error, error) {
	logger := logging.FromContext(ctx)
	noop := func() error { return nil }

	switch cfg.Store {
	case StoreFirebase:
		baseURL := cfg.FirebaseURL
		if baseURL == "" && cfg.FirebaseSubdomain != "" {
			baseURL = firebase.URL(cfg.FirebaseSubdomain)
		}
		if baseURL == "" {
			return nil, nil, errors.NewConfigError("store", "firebase_url or FIREBASE_SUBDOMAIN is required", nil)
		}
		opts := []firebase.Option{firebase.WithTimeout(cfg.HTTPTimeout)}
		if cfg.FirebaseAuth != "" {
			opts = append(opts, firebase.WithSecret(cfg.FirebaseAuth))
		}
		s, err := firebase.New(baseURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("url", baseURL).Msg("Using firebase store")
		return s, noop, nil

	case StoreRedis:
		rc := redis.DefaultConfig()
		rc.Addr = cfg.RedisAddr
		rc.Password = cfg.RedisPassword
		rc.DB = cfg.RedisDB
		if cfg.RedisPrefix != "" {
			rc.Prefix = cfg.RedisPrefix
		}
		s := redis.Open(rc)
		logger.Debug().Str("addr", rc.Addr).Int("db", rc.DB).Msg("Using redis store")
		return s, s.Close, nil

	case StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("path", cfg.SQLitePath).Msg("Using sqlite store")
		return s, s.Close, nil

	case StoreMemory:
		s := memory.New()
		if cfg.Snapshot == "" {
			logger.Debug().Msg("Using memory store without snapshot")
			return s, noop, nil
		}
		if err := s.LoadFile(cfg.Snapshot); err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("snapshot", cfg.Snapshot).Msg("Using memory store")
		return s, func() error { return s.SaveFile(cfg.Snapshot) }, nil

	default:
		return nil, nil, errors.NewConfigError("store", "unknown store "+cfg.Store+" (want firebase, redis, sqlite or memory)", nil)
	}
}
