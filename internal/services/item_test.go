package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	appErrors "github.com/aaravmahajanofficial/inventory-service/internal/errors"
	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	repository "github.com/aaravmahajanofficial/inventory-service/internal/repositories"
	"github.com/aaravmahajanofficial/inventory-service/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/inventory-service/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/inventory-service/internal/services/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@grocery.test"

type notifierFunc func(ctx context.Context, recipient, subject, body string) error

func (f notifierFunc) Send(ctx context.Context, recipient, subject, body string) error {
	return f(ctx, recipient, subject, body)
}

func newItemServiceUnderTest(notifier service.Notifier) (service.ItemService, *mocks.ItemRepository, *mocks.CategoryRepository) {
	itemRepo := new(mocks.ItemRepository)
	categoryRepo := new(mocks.CategoryRepository)

	svc := service.NewItemService(itemRepo, categoryRepo, notifier, config.Notifier{
		AdminEmail: adminEmail,
		Timeout:    time.Second,
	})

	return svc, itemRepo, categoryRepo
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedInput() *models.ItemInput {
	return &models.ItemInput{
		Name:        "Test Fruit",
		Description: "A test fruit",
		Price:       price("2.50"),
		Stock:       10,
		CategoryID:  1,
		Unit:        "PIECE",
	}
}

// saveAssigningID mimics the store assigning an ID on insert.
func saveAssigningID(id int64) func(context.Context, *models.Item) (*models.Item, error) {
	return func(_ context.Context, item *models.Item) (*models.Item, error) {
		if item.ID == 0 {
			item.ID = id
		}
		return item, nil
	}
}

func assertInvalidInput(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	category := &models.Category{ID: 1, Name: "Test Category"}

	t.Run("Success - Seed Case", func(t *testing.T) {
		// Arrange
		notifier := new(serviceMocks.Notifier)
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
			return i.ID == 0 && i.Name == "Test Fruit" && i.Unit == models.UnitPiece && i.Category == category
		})).Return(saveAssigningID(7)).Once()
		notifier.On("Send", mock.Anything, adminEmail, service.ItemCreatedSubject,
			mock.MatchedBy(func(body string) bool { return body != "" })).Return(nil).Once()

		// Act
		view, err := svc.CreateItem(ctx, seedInput())
		require.NoError(t, svc.Close(ctx))

		// Assert
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, int64(7), view.ID)
		assert.Equal(t, "Test Fruit", view.Name)
		assert.True(t, decimal.RequireFromString("2.50").Equal(view.Price))
		assert.Equal(t, 10, view.Stock)
		assert.Equal(t, models.UnitPiece, view.Unit)
		assert.Equal(t, int64(1), view.CategoryID)
		assert.Equal(t, "Test Category", view.CategoryName)
		itemRepo.AssertNumberOfCalls(t, "SaveItem", 1)
		notifier.AssertNumberOfCalls(t, "Send", 1)
		itemRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("Success - Body Describes Item", func(t *testing.T) {
		// Arrange
		var gotBody string
		notifier := notifierFunc(func(_ context.Context, _, _, body string) error {
			gotBody = body
			return nil
		})
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(8)).Once()

		// Act
		_, err := svc.CreateItem(ctx, seedInput())
		require.NoError(t, svc.Close(ctx))

		// Assert
		require.NoError(t, err)
		assert.Contains(t, gotBody, "Test Fruit")
		assert.Contains(t, gotBody, "2.50")
		assert.Contains(t, gotBody, "10 piece")
		assert.Contains(t, gotBody, "Test Category")
	})

	t.Run("Success - Default Unit", func(t *testing.T) {
		// Arrange
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)
		input := seedInput()
		input.Unit = ""

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(9)).Once()

		// Act
		view, err := svc.CreateItem(ctx, input)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.UnitPiece, view.Unit)
	})

	t.Run("Success - Notifier Error Is Isolated", func(t *testing.T) {
		// Arrange
		notifier := new(serviceMocks.Notifier)
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(10)).Once()
		notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp unavailable")).Once()

		// Act
		view, err := svc.CreateItem(ctx, seedInput())
		require.NoError(t, svc.Close(ctx))

		// Assert
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "Test Fruit", view.Name)
		itemRepo.AssertNumberOfCalls(t, "SaveItem", 1)
		notifier.AssertExpectations(t)
	})

	t.Run("Success - Notifier Panic Is Isolated", func(t *testing.T) {
		// Arrange
		notifier := notifierFunc(func(context.Context, string, string, string) error {
			panic("mailer exploded")
		})
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(11)).Once()

		// Act
		view, err := svc.CreateItem(ctx, seedInput())
		closeErr := svc.Close(ctx)

		// Assert
		require.NoError(t, err)
		require.NoError(t, closeErr)
		assert.Equal(t, int64(11), view.ID)
		itemRepo.AssertNumberOfCalls(t, "SaveItem", 1)
	})

	t.Run("Success - Notification Outlives Request Context", func(t *testing.T) {
		// Arrange
		var notifyErr error
		notifier := notifierFunc(func(ctx context.Context, _, _, _ string) error {
			notifyErr = ctx.Err()
			return nil
		})
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		reqCtx, cancel := context.WithCancel(context.Background())
		cancel()

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(12)).Once()

		// Act
		_, err := svc.CreateItem(reqCtx, seedInput())
		require.NoError(t, svc.Close(ctx))

		// Assert
		require.NoError(t, err)
		assert.NoError(t, notifyErr)
	})

	t.Run("Failure - Category Not Found", func(t *testing.T) {
		// Arrange
		notifier := new(serviceMocks.Notifier)
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)
		input := seedInput()
		input.CategoryID = 42

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound).Once()

		// Act
		view, err := svc.CreateItem(ctx, input)

		// Assert
		assertInvalidInput(t, err)
		assert.Nil(t, view)
		assert.Contains(t, err.Error(), "category not found")
		itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Category Store Error Propagates", func(t *testing.T) {
		// Arrange
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)
		dbErr := errors.New("connection refused")

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(nil, dbErr).Once()

		// Act
		view, err := svc.CreateItem(ctx, seedInput())

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, appErrors.ErrInvalidInput)
		assert.Nil(t, view)
		itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Save Error Propagates", func(t *testing.T) {
		// Arrange
		notifier := new(serviceMocks.Notifier)
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)
		dbErr := errors.New("unique violation")

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(nil, dbErr).Once()

		// Act
		view, err := svc.CreateItem(ctx, seedInput())
		require.NoError(t, svc.Close(ctx))

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, view)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	invalidInputs := []struct {
		name   string
		mutate func(*models.ItemInput)
		field  string
	}{
		{"Empty Name", func(i *models.ItemInput) { i.Name = "" }, "name"},
		{"Blank Name", func(i *models.ItemInput) { i.Name = "   " }, "name"},
		{"Missing Price", func(i *models.ItemInput) { i.Price = nil }, "price"},
		{"Negative Price", func(i *models.ItemInput) { i.Price = price("-1.00") }, "price"},
		{"Negative Stock", func(i *models.ItemInput) { i.Stock = -5 }, "stock"},
		{"Missing Category", func(i *models.ItemInput) { i.CategoryID = 0 }, "category_id"},
		{"Unknown Unit", func(i *models.ItemInput) { i.Unit = "barrel" }, "unit"},
		{"First Failure Wins", func(i *models.ItemInput) { i.Name = ""; i.Stock = -1 }, "name"},
	}

	for _, tc := range invalidInputs {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			// Arrange
			svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)
			input := seedInput()
			tc.mutate(input)

			// Act
			view, err := svc.CreateItem(ctx, input)

			// Assert
			assertInvalidInput(t, err)
			assert.Nil(t, view)
			assert.Contains(t, err.Error(), "'"+tc.field+"'")
			itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
			categoryRepo.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
		})
	}

	t.Run("Success - Zero Price Accepted", func(t *testing.T) {
		// Arrange
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)
		input := seedInput()
		input.Price = price("0")

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(category, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(13)).Once()

		// Act
		view, err := svc.CreateItem(ctx, input)

		// Assert
		require.NoError(t, err)
		assert.True(t, view.Price.IsZero())
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	oldCategory := &models.Category{ID: 1, Name: "Test Category"}
	newCategory := &models.Category{ID: 2, Name: "Produce"}

	existing := func() *models.Item {
		return &models.Item{
			ID:       5,
			Name:     "Old Fruit",
			Price:    decimal.RequireFromString("1.00"),
			Stock:    1,
			Unit:     models.UnitKilogram,
			Category: oldCategory,
		}
	}

	t.Run("Success - Update Item", func(t *testing.T) {
		// Arrange
		notifier := new(serviceMocks.Notifier)
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)
		input := &models.ItemInput{Name: "  New Fruit ", Price: price("3.10"), Stock: 20, CategoryID: 2, Unit: "dozen"}

		itemRepo.On("GetItemByID", mock.Anything, int64(5)).Return(existing(), nil).Once()
		categoryRepo.On("GetCategoryByID", mock.Anything, int64(2)).Return(newCategory, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
			return i.ID == 5 && i.Name == "New Fruit" && i.Category == newCategory
		})).Return(saveAssigningID(0)).Once()

		// Act
		view, err := svc.UpdateItem(ctx, 5, input)
		require.NoError(t, svc.Close(ctx))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(5), view.ID)
		assert.Equal(t, "New Fruit", view.Name)
		assert.True(t, decimal.RequireFromString("3.10").Equal(view.Price))
		assert.Equal(t, 20, view.Stock)
		assert.Equal(t, models.UnitDozen, view.Unit)
		assert.Equal(t, "Produce", view.CategoryName)
		itemRepo.AssertNumberOfCalls(t, "SaveItem", 1)
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		itemRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("Failure - Item Not Found", func(t *testing.T) {
		// Arrange
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)

		itemRepo.On("GetItemByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound).Once()

		// Act
		view, err := svc.UpdateItem(ctx, 404, seedInput())

		// Assert
		assertInvalidInput(t, err)
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
		categoryRepo.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid Input", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)
		input := seedInput()
		input.Stock = -5

		itemRepo.On("GetItemByID", mock.Anything, int64(5)).Return(existing(), nil).Once()

		// Act
		view, err := svc.UpdateItem(ctx, 5, input)

		// Assert
		assertInvalidInput(t, err)
		assert.Nil(t, view)
		itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Category Not Found", func(t *testing.T) {
		// Arrange
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(nil)

		itemRepo.On("GetItemByID", mock.Anything, int64(5)).Return(existing(), nil).Once()
		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound).Once()

		// Act
		view, err := svc.UpdateItem(ctx, 5, seedInput())

		// Assert
		assertInvalidInput(t, err)
		assert.Nil(t, view)
		itemRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Delete Item", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)

		itemRepo.On("ItemExists", mock.Anything, int64(5)).Return(true, nil).Once()
		itemRepo.On("DeleteItem", mock.Anything, int64(5)).Return(nil).Once()

		// Act
		err := svc.DeleteItem(ctx, 5)

		// Assert
		require.NoError(t, err)
		itemRepo.AssertNumberOfCalls(t, "DeleteItem", 1)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Failure - Item Not Found", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)

		itemRepo.On("ItemExists", mock.Anything, int64(404)).Return(false, nil).Once()

		// Act
		err := svc.DeleteItem(ctx, 404)

		// Assert
		assertInvalidInput(t, err)
		itemRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)
		dbErr := errors.New("connection reset")

		itemRepo.On("ItemExists", mock.Anything, int64(5)).Return(false, dbErr).Once()

		// Act
		err := svc.DeleteItem(ctx, 5)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		itemRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})
}

func TestGetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Get Item", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)
		item := &models.Item{ID: 3, Name: "Milk", Price: decimal.RequireFromString("0.99"), Unit: models.UnitLiter,
			Category: &models.Category{ID: 4, Name: "Dairy"}}

		itemRepo.On("GetItemByID", mock.Anything, int64(3)).Return(item, nil).Once()

		// Act
		view, err := svc.GetItem(ctx, 3)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Milk", view.Name)
		assert.Equal(t, "Dairy", view.CategoryName)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)

		itemRepo.On("GetItemByID", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound).Once()

		// Act
		view, err := svc.GetItem(ctx, 3)

		// Assert
		assertInvalidInput(t, err)
		assert.Nil(t, view)
	})
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	dairy := &models.Category{ID: 4, Name: "Dairy"}

	t.Run("Success - Filter By Category", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)
		categoryID := int64(4)
		items := []*models.Item{
			{ID: 1, Name: "Milk", Category: dairy},
			{ID: 2, Name: "Butter", Category: dairy},
		}

		itemRepo.On("ListItems", mock.Anything, &categoryID).Return(items, nil).Once()

		// Act
		views, err := svc.ListItems(ctx, &categoryID)

		// Assert
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Butter", views[1].Name)
		assert.Equal(t, int64(4), views[1].CategoryID)
	})

	t.Run("Success - Empty", func(t *testing.T) {
		// Arrange
		svc, itemRepo, _ := newItemServiceUnderTest(nil)

		itemRepo.On("ListItems", mock.Anything, (*int64)(nil)).Return([]*models.Item{}, nil).Once()

		// Act
		views, err := svc.ListItems(ctx, nil)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})
}

func TestUnits(t *testing.T) {
	svc, _, _ := newItemServiceUnderTest(nil)

	assert.Equal(t, models.Units(), svc.Units())
}

func TestClose(t *testing.T) {
	t.Run("Failure - Deadline Before Drain", func(t *testing.T) {
		// Arrange
		release := make(chan struct{})
		notifier := notifierFunc(func(context.Context, string, string, string) error {
			<-release
			return nil
		})
		svc, itemRepo, categoryRepo := newItemServiceUnderTest(notifier)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(1)).Return(&models.Category{ID: 1}, nil).Once()
		itemRepo.On("SaveItem", mock.Anything, mock.Anything).Return(saveAssigningID(1)).Once()

		_, err := svc.CreateItem(context.Background(), seedInput())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		// Act
		closeErr := svc.Close(ctx)
		close(release)

		// Assert
		assert.ErrorIs(t, closeErr, context.DeadlineExceeded)
		assert.NoError(t, svc.Close(context.Background()))
	})
}
