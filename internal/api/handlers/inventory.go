package handlers

import (
	"log"
	"net/http"
	"strconv"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// InventoryHandler lists rentable items and filters them against a customer's
// party space.
type InventoryHandler struct {
	Items ports.InventoryRepository
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items, err := h.Items.ListItems(r.Context())
	if err != nil {
		log.Printf("list items failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, inventoryResponse(items))
}

// Suitable filters the catalog by area (sqft), surface, and power
// availability. Omitted parameters relax the corresponding constraint.
func (h *InventoryHandler) Suitable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	req := domain.SpaceRequirements{Surface: q.Get("surface")}

	if raw := q.Get("area_sqft"); raw != "" {
		area, err := strconv.Atoi(raw)
		if err != nil || area < 0 {
			writeError(w, r, http.StatusBadRequest, "area_sqft must be a non-negative integer")
			return
		}
		req.AreaSqft = area
	}

	if raw := q.Get("has_power"); raw != "" {
		hasPower, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "has_power must be a boolean")
			return
		}
		req.HasPower = hasPower
	}

	items, err := h.Items.ListItems(r.Context())
	if err != nil {
		log.Printf("list items failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, inventoryResponse(services.FilterSuitableItems(items, req)))
}

func inventoryResponse(items []domain.InventoryItem) dto.ListInventoryResponse {
	res := dto.ListInventoryResponse{Items: make([]dto.InventoryItemResponse, 0, len(items))}
	for _, it := range items {
		res.Items = append(res.Items, dto.InventoryItemResponse{
			InventoryItemID: it.ID,
			Name:            it.Name,
			Category:        it.Category,
			HomeWarehouseID: it.HomeWarehouseID,
			MinSpaceSqft:    it.MinSpaceSqft,
			RequiresPower:   it.RequiresPower,
			AllowedSurfaces: it.AllowedSurfaces,
		})
	}
	return res
}
