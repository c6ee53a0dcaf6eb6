package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	appErrors "github.com/aaravmahajanofficial/inventory-service/internal/errors"
	"github.com/aaravmahajanofficial/inventory-service/internal/logging"
	"github.com/aaravmahajanofficial/inventory-service/internal/metrics"
	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	repository "github.com/aaravmahajanofficial/inventory-service/internal/repositories"
	"github.com/aaravmahajanofficial/inventory-service/internal/utils"
)

const ItemCreatedSubject = "New item added to inventory"

// Notifier delivers a plain-text message to a single recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type ItemService interface {
	CreateItem(ctx context.Context, input *models.ItemInput) (*models.ItemView, error)
	UpdateItem(ctx context.Context, id int64, input *models.ItemInput) (*models.ItemView, error)
	DeleteItem(ctx context.Context, id int64) error
	GetItem(ctx context.Context, id int64) (*models.ItemView, error)
	ListItems(ctx context.Context, categoryID *int64) ([]*models.ItemView, error)
	Units() []models.Unit
	// Close waits for in-flight notifications, or until ctx is done.
	Close(ctx context.Context) error
}

type itemService struct {
	items         repository.ItemRepository
	categories    repository.CategoryRepository
	notifier      Notifier
	adminEmail    string
	notifyTimeout time.Duration

	inflight sync.WaitGroup
}

func NewItemService(items repository.ItemRepository, categories repository.CategoryRepository, notifier Notifier, cfg config.Notifier) ItemService {

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &itemService{
		items:         items,
		categories:    categories,
		notifier:      notifier,
		adminEmail:    cfg.AdminEmail,
		notifyTimeout: timeout,
	}
}

func (s *itemService) CreateItem(ctx context.Context, input *models.ItemInput) (*models.ItemView, error) {

	logger := logging.FromContext(ctx)

	unit, err := validateItemInput(input)
	if err != nil {
		logger.Warn("Rejected item input", slog.Any("error", err))
		return nil, err
	}

	category, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       *input.Price,
		Stock:       input.Stock,
		Unit:        unit,
		Category:    category,
	}

	saved, err := s.items.SaveItem(ctx, item)
	if err != nil {
		logger.Error("Failed to save item", slog.Any("error", err))
		return nil, err
	}

	logger.Info("Item created", slog.Int64("item_id", saved.ID), slog.Int64("category_id", category.ID))

	s.notifyItemCreated(ctx, saved)

	return models.NewItemView(saved), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, input *models.ItemInput) (*models.ItemView, error) {

	logger := logging.FromContext(ctx)

	item, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Item %d not found", id)).WithError(err)
		}
		return nil, err
	}

	unit, err := validateItemInput(input)
	if err != nil {
		logger.Warn("Rejected item input", slog.Int64("item_id", id), slog.Any("error", err))
		return nil, err
	}

	category, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Price = *input.Price
	item.Stock = input.Stock
	item.Unit = unit
	item.Category = category

	saved, err := s.items.SaveItem(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Item %d not found", id)).WithError(err)
		}
		logger.Error("Failed to update item", slog.Int64("item_id", id), slog.Any("error", err))
		return nil, err
	}

	logger.Info("Item updated", slog.Int64("item_id", saved.ID))

	return models.NewItemView(saved), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {

	logger := logging.FromContext(ctx)

	exists, err := s.items.ItemExists(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		return appErrors.NotFoundError(fmt.Sprintf("Item %d not found", id))
	}

	if err := s.items.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError(fmt.Sprintf("Item %d not found", id)).WithError(err)
		}
		logger.Error("Failed to delete item", slog.Int64("item_id", id), slog.Any("error", err))
		return err
	}

	logger.Info("Item deleted", slog.Int64("item_id", id))

	return nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*models.ItemView, error) {

	item, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Item %d not found", id)).WithError(err)
		}
		return nil, err
	}

	return models.NewItemView(item), nil
}

func (s *itemService) ListItems(ctx context.Context, categoryID *int64) ([]*models.ItemView, error) {

	items, err := s.items.ListItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.NewItemView(item))
	}

	return views, nil
}

func (s *itemService) Units() []models.Unit {
	return models.Units()
}

func (s *itemService) Close(ctx context.Context) error {

	done := make(chan struct{})

	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for pending notifications: %w", ctx.Err())
	}
}

func (s *itemService) resolveCategory(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.ValidationError("category not found").WithError(err)
		}
		return nil, err
	}

	return category, nil
}

// validateItemInput checks fields in a fixed order and reports the first failure.
func validateItemInput(input *models.ItemInput) (models.Unit, error) {

	if input == nil {
		return "", appErrors.ValidationError("item input is required")
	}

	if strings.TrimSpace(input.Name) == "" {
		return "", appErrors.AddValidationError("name", "must not be blank")
	}

	if input.Price == nil {
		return "", appErrors.AddValidationError("price", "is required")
	}

	if input.Price.IsNegative() {
		return "", appErrors.AddValidationError("price", "must not be negative")
	}

	if input.Stock < 0 {
		return "", appErrors.AddValidationError("stock", "must not be negative")
	}

	if input.CategoryID == 0 {
		return "", appErrors.AddValidationError("category_id", "is required")
	}

	unit, ok := models.ParseUnit(input.Unit)
	if !ok {
		return "", appErrors.AddValidationError("unit", fmt.Sprintf("unknown unit %q", input.Unit))
	}

	return unit, nil
}

// notifyItemCreated sends the admin notice in the background. Failures end
// here and never reach the caller of CreateItem.
func (s *itemService) notifyItemCreated(ctx context.Context, item *models.Item) {

	if s.notifier == nil {
		return
	}

	logger := logging.FromContext(ctx).With(slog.Int64("item_id", item.ID))
	body := itemCreatedBody(item)

	notifyCtx, cancel := utils.WithDetachedTimeout(ctx, s.notifyTimeout)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Notifier panicked", slog.Any("panic", r))
				metrics.RecordNotification(metrics.OutcomePanicked)
			}
		}()

		if err := s.notifier.Send(notifyCtx, s.adminEmail, ItemCreatedSubject, body); err != nil {
			logger.Warn("Failed to send item created notification", slog.Any("error", err))
			metrics.RecordNotification(metrics.OutcomeFailed)
			return
		}

		metrics.RecordNotification(metrics.OutcomeSent)
	}()
}

func itemCreatedBody(item *models.Item) string {

	var b strings.Builder

	b.WriteString("A new item was added to the inventory.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", item.Name)
	fmt.Fprintf(&b, "Price: %s\n", item.Price.StringFixed(2))
	fmt.Fprintf(&b, "Stock: %d %s\n", item.Stock, item.Unit)

	if item.Category != nil {
		fmt.Fprintf(&b, "Category: %s\n", item.Category.Name)
	}

	return b.String()
}
