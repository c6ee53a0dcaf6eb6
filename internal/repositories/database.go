package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned by the repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	DB           *sql.DB
	Item         ItemRepository
	Category     CategoryRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewFromDB(db), nil
}

func NewFromDB(db *sql.DB) *Repository {
	return &Repository{
		DB:           db,
		Item:         NewItemRepo(db),
		Category:     NewCategoryRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
