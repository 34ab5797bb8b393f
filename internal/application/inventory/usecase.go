package inventory

import (
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/keyed"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// UseCase es el libro mayor de stock: un registro por producto, cantidad
// nunca negativa, y un ChangeEvent por cada mutación confirmada.
//
// Las secuencias leer-modificar-escribir sobre un mismo registro se
// serializan con un mutex por id; la creación se serializa por productId para
// que la verificación de unicidad y el insert no se crucen entre peticiones.
// El índice único del almacén sigue siendo la segunda línea de defensa.
type UseCase struct {
	repo      repository.InventoryRepository
	publisher EventPublisher
	locks     *keyed.Mutex
	log       *logger.Logger
}

// NewUseCase construye el libro mayor. El publisher se inyecta en la
// construcción; con nil la emisión se omite en silencio.
func NewUseCase(repo repository.InventoryRepository, publisher EventPublisher, log *logger.Logger) *UseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:      repo,
		publisher: publisher,
		locks:     keyed.NewMutex(),
		log:       log,
	}
}

// List devuelve todos los registros de inventario.
func (uc *UseCase) List() ([]dto.InventoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		uc.log.Error().Err(err).Str("op", "inventory.list").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toInventoryResponse(rec))
	}
	return items, nil
}

// GetByID obtiene un registro por ID. Devuelve (nil, nil) si no existe.
func (uc *UseCase) GetByID(id string) (*dto.InventoryResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "inventory.get").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if rec == nil {
		return nil, nil
	}
	return toInventoryResponse(rec), nil
}

// Create crea el registro de inventario de un producto. La existencia del
// producto ya fue verificada por el middleware que protege la ruta; aquí solo
// se garantiza la unicidad por producto. Emite un evento "created".
func (uc *UseCase) Create(in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if !entity.IsValidID(in.ProductID) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	uc.locks.Lock(in.ProductID)
	defer uc.locks.Unlock(in.ProductID)

	existing, err := uc.repo.GetByProductID(in.ProductID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "inventory.create").Str("product_id", in.ProductID).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	rec := &entity.InventoryRecord{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(rec); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrDuplicate
		}
		uc.log.Error().Err(err).Str("op", "inventory.create").Str("product_id", in.ProductID).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	uc.publisher.Publish(entity.NewChangeCreated(rec))
	return toInventoryResponse(rec), nil
}

// SetQuantity reemplaza la cantidad absoluta. Cantidad omitida = sin cambio.
// Emite un evento "updated".
func (uc *UseCase) SetQuantity(id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	return uc.mutate(id, "inventory.set", func(current int) (int, error) {
		if in.Quantity == nil {
			return current, nil
		}
		if *in.Quantity < 0 {
			return 0, domain.ErrInvalidInput
		}
		return *in.Quantity, nil
	})
}

// AdjustQuantity suma el delta a la cantidad actual. Delta omitido = sin
// cambio. Un resultado negativo se rechaza con ErrInvalidInput y la cantidad
// almacenada queda intacta. Emite un evento "updated".
func (uc *UseCase) AdjustQuantity(id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	return uc.mutate(id, "inventory.adjust", func(current int) (int, error) {
		if in.Quantity == nil {
			return current, nil
		}
		next := current + *in.Quantity
		if next < 0 {
			return 0, domain.ErrInvalidInput
		}
		return next, nil
	})
}

// ResetQuantity deja la cantidad en 0 sin importar el valor previo. Emite un
// evento "updated".
func (uc *UseCase) ResetQuantity(id string) (*dto.InventoryResponse, error) {
	return uc.mutate(id, "inventory.reset", func(int) (int, error) {
		return 0, nil
	})
}

// Delete elimina el registro y emite el marcador de borrado.
func (uc *UseCase) Delete(id string) error {
	if !entity.IsValidID(id) {
		return domain.ErrInvalidInput
	}
	uc.locks.Lock(id)
	defer uc.locks.Unlock(id)

	rec, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "inventory.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		uc.log.Error().Err(err).Str("op", "inventory.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	uc.publisher.Publish(entity.NewChangeDeleted(rec.ProductID))
	return nil
}

// mutate aplica una transición cantidad->cantidad bajo el lock del registro:
// lee, calcula, valida, escribe y publica. Cualquier error de validación
// aborta antes de escribir.
func (uc *UseCase) mutate(id, op string, next func(current int) (int, error)) (*dto.InventoryResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	uc.locks.Lock(id)
	defer uc.locks.Unlock(id)

	rec, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", op).Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	q, err := next(rec.Quantity)
	if err != nil {
		return nil, err
	}
	rec.Quantity = q
	rec.UpdatedAt = time.Now()
	if err := uc.repo.Update(rec); err != nil {
		uc.log.Error().Err(err).Str("op", op).Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	uc.publisher.Publish(entity.NewChangeUpdated(rec))
	return toInventoryResponse(rec), nil
}

func toInventoryResponse(rec *entity.InventoryRecord) *dto.InventoryResponse {
	if rec == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:        rec.ID,
		ProductID: rec.ProductID,
		Quantity:  rec.Quantity,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
