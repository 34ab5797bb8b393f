package entity

// CartItem es una línea del carrito: referencia a un producto existente y
// cantidad positiva que se acumula al hacer merge.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart es el carrito de un usuario. Hay como máximo un carrito por usuario
// (índice único sobre UserID) y las líneas son únicas por ProductID.
type Cart struct {
	ID     string
	UserID string
	Items  []CartItem
}

// FindItem devuelve el índice de la línea con ese producto, o -1 si no existe.
func (c *Cart) FindItem(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
