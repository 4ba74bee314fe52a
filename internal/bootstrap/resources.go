package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/portfolio/config"
	httpapi "github.com/GoSim-25-26J-441/portfolio/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
)

// Resources are the external connections the service runs on.
type Resources struct {
	Projects repository.Store
	Sessions session.Store
	// Verifier is nil when no Firebase credentials are configured.
	Verifier auth.TokenVerifier
	Checks   map[string]httpapi.Pinger

	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func (r *Resources) onClose(f func()) {
	r.closers = append(r.closers, f)
}

func OpenResources(ctx context.Context, cfg *config.Config) (*Resources, error) {
	res := &Resources{Checks: map[string]httpapi.Pinger{}}

	var app *firebase.App
	if cfg.Firebase.CredentialsPath != "" {
		var err error
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase auth client: %w", err)
		}
		res.Verifier = client
	}

	if err := res.openProjects(ctx, cfg, app); err != nil {
		res.Close()
		return nil, err
	}
	if err := res.openSessions(ctx, cfg); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

func (r *Resources) openProjects(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.Store.Driver {
	case config.StoreFirestore:
		if app == nil {
			return fmt.Errorf("firestore store needs FIREBASE_CREDENTIALS_PATH")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("firestore client: %w", err)
		}
		r.onClose(func() { _ = client.Close() })

		store := repository.NewFirestoreStore(client, cfg.Store.Collection)
		r.Projects = store
		r.Checks["store"] = store

	case config.StorePostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Store.DSN})
		if err != nil {
			return err
		}
		r.onClose(pool.Close)

		db := SQLDB(pool)
		r.onClose(func() { _ = db.Close() })

		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		r.Projects = store
		r.Checks["store"] = store

	default:
		r.Projects = repository.NewMemoryStore(nil)
		r.Checks["store"] = nil
	}

	logutils.Log.WithField("driver", cfg.Store.Driver).Info("project store ready")
	return nil
}

func (r *Resources) openSessions(ctx context.Context, cfg *config.Config) error {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		r.onClose(func() { _ = client.Close() })

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		r.Sessions = session.NewRedisStore(client, cfg.Session.TTL)
		r.Checks["sessions"] = httpapi.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logutils.Log.WithField("addr", cfg.Redis.Addr).Info("session store: redis")
		return nil
	}

	store := session.NewMemoryStore(cfg.Session.TTL)
	sweeper, err := session.StartSweeper(store, "")
	if err != nil {
		return fmt.Errorf("start session sweeper: %w", err)
	}
	r.onClose(func() { <-sweeper.Stop().Done() })

	r.Sessions = store
	r.Checks["sessions"] = nil
	logutils.Log.Info("session store: memory")
	return nil
}
