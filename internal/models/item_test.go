package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want models.Unit
		ok   bool
	}{
		{"PIECE", models.UnitPiece, true},
		{"kg", models.UnitKilogram, true},
		{" Dozen ", models.UnitDozen, true},
		{"litre", models.UnitLiter, true},
		{"", models.UnitPiece, true},
		{"barrel", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := models.ParseUnit(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewItemView(t *testing.T) {
	t.Run("With Category", func(t *testing.T) {
		item := &models.Item{
			ID:       7,
			Name:     "Apple",
			Price:    decimal.RequireFromString("1.20"),
			Stock:    40,
			Unit:     models.UnitKilogram,
			Category: &models.Category{ID: 3, Name: "Fruit"},
		}

		view := models.NewItemView(item)

		assert.Equal(t, int64(7), view.ID)
		assert.Equal(t, "Apple", view.Name)
		assert.True(t, decimal.RequireFromString("1.2").Equal(view.Price))
		assert.Equal(t, 40, view.Stock)
		assert.Equal(t, models.UnitKilogram, view.Unit)
		assert.Equal(t, int64(3), view.CategoryID)
		assert.Equal(t, "Fruit", view.CategoryName)
	})

	t.Run("Without Category", func(t *testing.T) {
		view := models.NewItemView(&models.Item{ID: 1, Name: "Loose"})

		assert.Zero(t, view.CategoryID)
		assert.Empty(t, view.CategoryName)
	})
}
