package handlers

import (
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/inventory-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-service/internal/errors"
	models "github.com/aaravmahajanofficial/inventory-service/internal/models"
	service "github.com/aaravmahajanofficial/inventory-service/internal/services"
	"github.com/aaravmahajanofficial/inventory-service/internal/utils"
	"github.com/aaravmahajanofficial/inventory-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type ItemHandler struct {
	itemService service.ItemService
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validator:   validator.New(),
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// POST /api/v1/items
func (h *ItemHandler) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ItemInput
		if !h.parseItemInput(w, r, &req) {
			return
		}

		item, err := h.itemService.CreateItem(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to create item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item created successfully", slog.Int64("itemId", item.ID))
		response.Success(w, http.StatusCreated, item)

	}
}

// PUT /api/v1/items/{id}
func (h *ItemHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ItemInput
		if !h.parseItemInput(w, r, &req) {
			return
		}

		item, err := h.itemService.UpdateItem(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Failed to update item", slog.Int64("itemId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item updated successfully", slog.Int64("itemId", item.ID))
		response.Success(w, http.StatusOK, item)

	}
}

// DELETE /api/v1/items/{id}
func (h *ItemHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
			logger.Warn("Failed to delete item", slog.Int64("itemId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item deleted successfully", slog.Int64("itemId", id))
		w.WriteHeader(http.StatusNoContent)

	}
}

// GET /api/v1/items/{id}
func (h *ItemHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		item, err := h.itemService.GetItem(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)

	}
}

// for eg: GET /api/v1/items?category_id=3
func (h *ItemHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var categoryID *int64

		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.Error(w, errors.BadRequestError("Invalid category_id"))
				return
			}
			categoryID = &id
		}

		items, err := h.itemService.ListItems(r.Context(), categoryID)
		if err != nil {
			logger.Error("Failed to fetch items", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)

	}
}

// GET /api/v1/items/units
func (h *ItemHandler) Units() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.itemService.Units())
	}
}

func (h *ItemHandler) parseItemInput(w http.ResponseWriter, r *http.Request, req *models.ItemInput) bool {

	if err := utils.DecodeJSONBody(r, req); err != nil {
		response.Error(w, errors.BadRequestError(err.Error()))
		return false
	}

	req.Name = h.sanitize(req.Name)
	req.Description = h.sanitize(req.Description)

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			response.ValidationError(w, validationErrs)
			return false
		}
		response.Error(w, errors.BadRequestError("invalid input data"))
		return false
	}

	return true
}

// sanitize drops markup; StrictPolicy escapes entities, which are decoded back.
func (h *ItemHandler) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(h.sanitizer.Sanitize(s)))
}
