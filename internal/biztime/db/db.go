// Package db implements the gorm-backed Repository for companies,
// invoices, industries and their associations.
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Repository struct {
	db  *gorm.DB
	cfg *Config
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
	Debug    bool
}

// DSN returns the connection string handed to the gorm driver.
func (c *Config) DSN() string {
	if c.Driver == "sqlite" {
		if strings.Contains(c.Path, "_foreign_keys") {
			return c.Path
		}
		sep := "?"
		if strings.Contains(c.Path, "?") {
			sep = "&"
		}
		return c.Path + sep + "_foreign_keys=1"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// form of the connection settings.
func (c *Config) URL() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.DBName,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

func NewRepository(cfg *Config) (*Repository, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// an in-memory database lives and dies with its single connection
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db, cfg: cfg}, nil
}

// Connect opens the repository, retrying with bo until the database answers.
func Connect(ctx context.Context, cfg *Config, bo backoff.BackOff, log *zap.Logger) (*Repository, error) {
	var repo *Repository
	op := func() error {
		r, err := NewRepository(cfg)
		if err != nil {
			if errors.Is(err, ErrUnsupportedDriver) {
				return backoff.Permanent(err)
			}
			log.Warn("database not ready, retrying", zap.Error(err))
			return err
		}
		repo = r
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return repo, nil
}

// Dialect names the underlying gorm dialector ("postgres", "sqlite").
func (r *Repository) Dialect() string {
	return r.db.Dialector.Name()
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, cfg: r.cfg})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
