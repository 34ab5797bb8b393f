package dto

// CartItemRequest línea entrante para el merge del carrito.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CartItemResponse línea del carrito en respuestas.
type CartItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartResponse salida de un carrito.
type CartResponse struct {
	ID     string             `json:"id"`
	UserID string             `json:"userId"`
	Items  []CartItemResponse `json:"items"`
}
