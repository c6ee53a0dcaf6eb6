package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	"github.com/aaravmahajanofficial/inventory-service/internal/utils"
)

type ItemRepository interface {
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	// SaveItem inserts the item when its ID is zero and updates it otherwise.
	SaveItem(ctx context.Context, item *models.Item) (*models.Item, error)
	ItemExists(ctx context.Context, id int64) (bool, error)
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, categoryID *int64) ([]*models.Item, error)
}

type itemRepository struct {
	DB *sql.DB
}

func NewItemRepo(db *sql.DB) ItemRepository {
	return &itemRepository{DB: db}
}

const itemColumns = `
		SELECT i.id, i.name, i.description, i.price, i.stock, i.unit, i.created_at, i.updated_at,
		       c.id, c.name, c.description
		FROM items i
		JOIN categories c ON i.category_id = c.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	category := &models.Category{}

	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Stock, &item.Unit, &item.CreatedAt, &item.UpdatedAt,
		&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, err
	}

	item.Category = category

	return item, nil
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item, err := scanItem(r.DB.QueryRowContext(dbCtx, itemColumns+`
		WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) SaveItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if item.Category == nil {
		return nil, errors.New("item has no category")
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if item.ID == 0 {
		query := `INSERT INTO items (category_id, name, description, price, stock, unit)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at`

		err := r.DB.QueryRowContext(dbCtx, query, item.Category.ID, item.Name, item.Description, item.Price, item.Stock, item.Unit).
			Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("inserting item: %w", err)
		}

		return item, nil
	}

	query := `
		UPDATE items SET category_id = $1, name = $2, description = $3, price = $4, stock = $5, unit = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, item.Category.ID, item.Name, item.Description, item.Price, item.Stock, item.Unit, item.ID).
		Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) ItemExists(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking item existence: %w", err)
	}

	return exists, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return ErrNotFound
	}

	return nil
}

// nil categoryID lists every item
func (r *itemRepository) ListItems(ctx context.Context, categoryID *int64) ([]*models.Item, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		rows *sql.Rows
		err  error
	)

	if categoryID != nil {
		rows, err = r.DB.QueryContext(dbCtx, itemColumns+`
		WHERE i.category_id = $1
		ORDER BY i.id`, *categoryID)
	} else {
		rows, err = r.DB.QueryContext(dbCtx, itemColumns+`
		ORDER BY i.id`)
	}

	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}

	defer rows.Close()

	items := []*models.Item{}

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, nil
}
