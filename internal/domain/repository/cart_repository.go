package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart.
type CartRepository interface {
	List() ([]*entity.Cart, error)
	GetByUserID(userID string) (*entity.Cart, error)
	// GetOrCreate devuelve el carrito del usuario, creándolo vacío de forma
	// atómica (upsert) si no existe.
	GetOrCreate(userID string) (*entity.Cart, error)
	// Update reemplaza la colección de líneas del carrito en una sola escritura.
	Update(cart *entity.Cart) error
}
