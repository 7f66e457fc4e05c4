package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/novatale/armory/internal/inventory"
	"github.com/novatale/armory/internal/logger"
)

// ItemRequest identifies a player and an item
type ItemRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t "`
	ItemID   int    `json:"item_id" validate:"required,min=1"`
}

// ItemQuantityRequest identifies a player, an item and a quantity
type ItemQuantityRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t "`
	ItemID   int    `json:"item_id" validate:"required,min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// decodeItemRequest decodes and validates an ItemRequest body
func decodeItemRequest(w http.ResponseWriter, r *http.Request) (ItemRequest, bool) {
	log := logger.FromContext(r.Context())

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode item request", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Invalid request", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return req, false
	}
	return req, true
}

// decodeItemQuantityRequest decodes and validates an ItemQuantityRequest body
func decodeItemQuantityRequest(w http.ResponseWriter, r *http.Request) (ItemQuantityRequest, bool) {
	log := logger.FromContext(r.Context())

	var req ItemQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode item request", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Invalid request", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return req, false
	}
	return req, true
}

// HandleAddItem adds items to a player's inventory
// @Summary Add item to inventory
// @Description Add copies of an item to a player's inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ItemQuantityRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/item/add [post]
func HandleAddItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeItemQuantityRequest(w, r)
		if !ok {
			return
		}

		if err := svc.AddItem(r.Context(), req.PlayerID, req.ItemID, req.Quantity); err != nil {
			log.Error("Failed to add item", "error", err, "playerID", req.PlayerID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item added"})
	}
}

// RemoveItemResponse reports how many items were removed
type RemoveItemResponse struct {
	Removed int `json:"removed"`
}

// HandleRemoveItem removes items from a player's inventory
// @Summary Remove item from inventory
// @Description Remove up to the requested quantity; removing fewer than requested is still success
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ItemQuantityRequest true "Item details"
// @Success 200 {object} RemoveItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/item/remove [post]
func HandleRemoveItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeItemQuantityRequest(w, r)
		if !ok {
			return
		}

		removed, err := svc.RemoveItem(r.Context(), req.PlayerID, req.ItemID, req.Quantity)
		if err != nil {
			log.Error("Failed to remove item", "error", err, "playerID", req.PlayerID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, RemoveItemResponse{Removed: removed})
	}
}

// HandleEquipItem equips an item from the player's inventory
// @Summary Equip item
// @Description Equip an item, displacing any equipped item of the same category back to inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/item/equip [post]
func HandleEquipItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeItemRequest(w, r)
		if !ok {
			return
		}

		if err := svc.EquipItem(r.Context(), req.PlayerID, req.ItemID); err != nil {
			log.Error("Failed to equip item", "error", err, "playerID", req.PlayerID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item equipped"})
	}
}

// HandleUnequipItem returns an equipped item to the inventory
// @Summary Unequip item
// @Description Return an equipped item to the player's inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/item/unequip [post]
func HandleUnequipItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeItemRequest(w, r)
		if !ok {
			return
		}

		if err := svc.UnequipItem(r.Context(), req.PlayerID, req.ItemID); err != nil {
			log.Error("Failed to unequip item", "error", err, "playerID", req.PlayerID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item unequipped"})
	}
}

// UseItemResponse carries the effect request produced by using an item
type UseItemResponse struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Value    int    `json:"value"`
}

// HandleUseItem consumes one occurrence of an item
// @Summary Use item
// @Description Consume one occurrence of an item and return its effect request
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item details"
// @Success 200 {object} UseItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/item/use [post]
func HandleUseItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeItemRequest(w, r)
		if !ok {
			return
		}

		effect, err := svc.UseItem(r.Context(), req.PlayerID, req.ItemID)
		if err != nil {
			log.Error("Failed to use item", "error", err, "playerID", req.PlayerID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, UseItemResponse{
			ItemID:   effect.ItemID,
			Name:     effect.Name,
			Category: string(effect.Category),
			Value:    effect.Value,
		})
	}
}

// InventoryResponse is the quantity-grouped inventory listing
type InventoryResponse struct {
	Items []inventory.Entry `json:"items"`
}

// HandleGetInventory returns a player's inventory grouped by item
// @Summary Get inventory
// @Description Return the player's inventory grouped by item with quantities
// @Tags inventory
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/inventory [get]
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "playerID", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{Items: entries})
	}
}

// InventoryCountsResponse maps item IDs to held quantities
type InventoryCountsResponse struct {
	Counts map[int]int `json:"counts"`
}

// HandleGetInventoryCounts returns a player's inventory as an ID-to-quantity map
// @Summary Get inventory counts
// @Description Return the player's inventory as a map of item ID to quantity
// @Tags inventory
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} InventoryCountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/inventory/counts [get]
func HandleGetInventoryCounts(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		counts, err := svc.GetInventoryCounts(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get inventory counts", "error", err, "playerID", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryCountsResponse{Counts: counts})
	}
}

// HandleGetEquipment returns a player's equipped items
// @Summary Get equipment
// @Description Return the player's currently equipped items
// @Tags inventory
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/equipment [get]
func HandleGetEquipment(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		items, err := svc.GetEquipment(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get equipment", "error", err, "playerID", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
	}
}
