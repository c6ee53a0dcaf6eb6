package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitPiece    Unit = "piece"
	UnitPack     Unit = "pack"
	UnitDozen    Unit = "dozen"
	UnitLiter    Unit = "liter"
	UnitGram     Unit = "gram"
	UnitPound    Unit = "pound"
)

var unitAliases = map[string]Unit{
	"kilogram": UnitKilogram,
	"litre":    UnitLiter,
	"lb":       UnitPound,
	"g":        UnitGram,
	"l":        UnitLiter,
}

func Units() []Unit {
	return []Unit{UnitKilogram, UnitPiece, UnitPack, UnitDozen, UnitLiter, UnitGram, UnitPound}
}

// ParseUnit accepts display names and enum-style names in any case ("PIECE", "Kg").
// An empty string maps to UnitPiece.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UnitPiece, true
	}

	for _, u := range Units() {
		if string(u) == s {
			return u, true
		}
	}

	u, ok := unitAliases[s]

	return u, ok
}

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        Unit            `json:"unit"`
	Category    *Category       `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemInput carries unvalidated item fields for create and update.
type ItemInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       int              `json:"stock" validate:"gte=0"`
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
	Unit        string           `json:"unit,omitempty" validate:"omitempty,max=20"`
}

type ItemView struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Unit         Unit            `json:"unit"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

func NewItemView(item *Item) *ItemView {
	view := &ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Stock:       item.Stock,
		Unit:        item.Unit,
	}

	if item.Category != nil {
		view.CategoryID = item.Category.ID
		view.CategoryName = item.Category.Name
	}

	return view
}
