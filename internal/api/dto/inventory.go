package dto

type InventoryItemResponse struct {
	InventoryItemID string   `json:"inventory_item_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	HomeWarehouseID string   `json:"home_warehouse_id"`
	MinSpaceSqft    int      `json:"min_space_sqft"`
	RequiresPower   bool     `json:"requires_power"`
	AllowedSurfaces []string `json:"allowed_surfaces"`
}

type ListInventoryResponse struct {
	Items []InventoryItemResponse `json:"items"`
}
