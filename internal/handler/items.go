package handler

import (
	"net/http"
	"strings"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/logger"
)

// ItemsResponse lists item definitions from the catalog
type ItemsResponse struct {
	Items []domain.Item `json:"items"`
}

// ItemsFilterRequest carries the optional catalog filter from the query
// string
type ItemsFilterRequest struct {
	Category string `validate:"omitempty,category"`
}

// HandleGetItems lists the item catalog, optionally filtered by category
// @Summary List items
// @Description Return all item definitions, optionally filtered by category
// @Tags items
// @Produce json
// @Param category query string false "Item category filter"
// @Success 200 {object} ItemsResponse
// @Failure 400 {object} ErrorResponse
// @Router /items [get]
func HandleGetItems(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ItemsFilterRequest{Category: r.URL.Query().Get("category")}
		if err := GetValidator().ValidateStruct(filter); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid item category")
			return
		}

		if filter.Category == "" {
			respondJSON(w, http.StatusOK, ItemsResponse{Items: cat.All()})
			return
		}

		category := domain.Category(strings.ToLower(filter.Category))
		respondJSON(w, http.StatusOK, ItemsResponse{Items: cat.AllOfCategory(category)})
	}
}

// HandleGetItem returns a single item definition by ID
// @Summary Get item
// @Description Return the item definition for an item ID
// @Tags items
// @Produce json
// @Param id query int true "Item ID"
// @Success 200 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/lookup [get]
func HandleGetItem(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := itemIDFromQuery(w, r)
		if !ok {
			return
		}

		item, err := cat.Lookup(itemID)
		if err != nil {
			log.Warn("Item not found", "itemID", itemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}
