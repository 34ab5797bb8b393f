package dto

import "time"

// CreateInventoryRequest entrada para crear un registro de inventario.
// La existencia del producto la verifica el middleware antes de llegar aquí.
type CreateInventoryRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// UpdateInventoryRequest entrada para mutar la cantidad. En PUT la cantidad es
// absoluta; en update-quantity es el delta a sumar. Si se omite, la cantidad
// no cambia.
type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
