package handlers

import (
	"log"
	"net/http"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/ports"
)

type WarehouseHandler struct {
	Warehouses ports.WarehouseRepository
}

func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	warehouses, err := h.Warehouses.ListWarehouses(r.Context())
	if err != nil {
		log.Printf("list warehouses failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWarehousesResponse{Warehouses: make([]dto.WarehouseResponse, 0, len(warehouses))}
	for _, wh := range warehouses {
		res.Warehouses = append(res.Warehouses, dto.WarehouseResponse{
			WarehouseID: wh.ID,
			Name:        wh.Name,
			Address:     wh.Address,
			Lat:         wh.Lat,
			Lng:         wh.Lng,
			IsActive:    wh.IsActive,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
