package repo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-mongo-shop/internal/core/config"
	"go-gin-mongo-shop/internal/core/database"
	"go-gin-mongo-shop/internal/domain"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users    domain.UserRepository
	Products domain.ProductRepository
	Carts    domain.CartRepository
	Close    func() error
}

func NewMemoryStore() *Store {
	m := NewMemory()
	return &Store{Users: m.Users(), Products: m.Products(), Carts: m.Carts(), Close: func() error { return nil }}
}

// Open connects the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.DB, l *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case "memory":
		l.Warn("using in-memory store, data is lost on exit")
		return NewMemoryStore(), nil

	case "mongo":
		client, db, err := database.NewMongo(ctx, database.MongoOpts{
			URI:            cfg.DSN,
			Database:       cfg.Name,
			Username:       cfg.Username,
			Password:       cfg.Password,
			MaxPoolSize:    uint64(max(0, cfg.MaxOpenConns)),
			ConnectTimeout: time.Duration(cfg.ConnectTimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := EnsureIndexes(ctx, db); err != nil {
				_ = database.CloseMongo(client, 5*time.Second)
				return nil, err
			}
			l.Info("mongo indexes ensured")
		}
		return &Store{
			Users:    NewMongoUserRepo(db),
			Products: NewMongoProductRepo(db),
			Carts:    NewMongoCartRepo(db),
			Close:    func() error { return database.CloseMongo(client, 5*time.Second) },
		}, nil

	case "postgres", "mysql":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.Driver,
			DSN:                cfg.DSN,
			Username:           cfg.Username,
			Password:           cfg.Password,
			MaxOpenConns:       cfg.MaxOpenConns,
			MaxIdleConns:       cfg.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.ConnMaxLifetimeMin,
			LogLevel:           cfg.LogLevel,
		})
		if err != nil {
			return nil, err
		}
		return gormStore(db, cfg.AutoMigrate, l)
	}
	return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
}

// gormStore owns db: the pool is closed when migration fails.
func gormStore(db *gorm.DB, migrate bool, l *zap.Logger) (*Store, error) {
	closeDB := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	if migrate {
		if err := AutoMigrate(db); err != nil {
			if cerr := closeDB(); cerr != nil {
				l.Warn("close after failed automigrate", zap.Error(cerr))
			}
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	return &Store{
		Users:    NewUserRepo(db),
		Products: NewProductRepo(db),
		Carts:    NewCartRepo(db),
		Close:    closeDB,
	}, nil
}
