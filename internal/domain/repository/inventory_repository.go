package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para InventoryRecord.
// La unicidad por ProductID la garantiza también el índice del almacén; el
// caso de uso hace además la verificación previa explícita.
type InventoryRepository interface {
	List() ([]*entity.InventoryRecord, error)
	GetByID(id string) (*entity.InventoryRecord, error)
	GetByProductID(productID string) (*entity.InventoryRecord, error)
	Create(rec *entity.InventoryRecord) error
	Update(rec *entity.InventoryRecord) error
	Delete(id string) error
}
