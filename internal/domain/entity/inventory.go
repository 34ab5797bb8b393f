package entity

import "time"

// InventoryRecord representa el stock de un producto. Hay como máximo un
// registro por producto (índice único sobre ProductID) y Quantity nunca
// es negativa.
// Lleva tags JSON porque el snapshot viaja tal cual dentro de ChangeEvent.
type InventoryRecord struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
