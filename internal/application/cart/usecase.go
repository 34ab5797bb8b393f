package cart

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/keyed"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// UseCase es el motor de carritos: un carrito por usuario (creación perezosa
// atómica) y merge de líneas validado contra el catálogo.
//
// El merge es todo-o-nada a nivel de lote: las líneas se validan y acumulan
// sobre una copia en memoria y se persisten en una sola escritura; el primer
// fallo aborta sin persistir nada. Los merge sobre un mismo carrito se
// serializan con un mutex por userId.
type UseCase struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	locks    *keyed.Mutex
	log      *logger.Logger
}

// NewUseCase construye el motor de carritos. El catálogo se consulta de forma
// síncrona para validar cada línea entrante.
func NewUseCase(repo repository.CartRepository, products repository.ProductRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:     repo,
		products: products,
		locks:    keyed.NewMutex(),
		log:      log,
	}
}

// GetAll devuelve todos los carritos.
func (uc *UseCase) GetAll() ([]dto.CartResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		uc.log.Error().Err(err).Str("op", "cart.list").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	items := make([]dto.CartResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCartResponse(c))
	}
	return items, nil
}

// GetOrCreate devuelve el carrito del usuario, creándolo vacío de forma
// atómica si no existe. Es idempotente: dos llamadas seguidas devuelven el
// mismo carrito.
func (uc *UseCase) GetOrCreate(userID string) (*dto.CartResponse, error) {
	if !entity.IsValidID(userID) {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.repo.GetOrCreate(userID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "cart.get_or_create").Str("user_id", userID).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	return toCartResponse(cart), nil
}

// Merge acumula las líneas entrantes sobre el carrito del usuario. Cada línea
// debe referenciar un producto existente y traer cantidad positiva; líneas
// repetidas dentro del lote se procesan en orden de entrada y acumulan. El
// carrito debe existir (los llamadores hacen GetOrCreate primero).
func (uc *UseCase) Merge(userID string, items []dto.CartItemRequest) (*dto.CartResponse, error) {
	if !entity.IsValidID(userID) {
		return nil, domain.ErrInvalidInput
	}
	uc.locks.Lock(userID)
	defer uc.locks.Unlock(userID)

	cart, err := uc.repo.GetByUserID(userID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "cart.merge").Str("user_id", userID).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}

	// Acumular sobre una copia: si una línea falla, el carrito persistido
	// queda intacto.
	merged := make([]entity.CartItem, len(cart.Items))
	copy(merged, cart.Items)
	work := entity.Cart{ID: cart.ID, UserID: cart.UserID, Items: merged}

	for _, in := range items {
		if !entity.IsValidID(in.ProductID) || in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(in.ProductID)
		if err != nil {
			uc.log.Error().Err(err).Str("op", "cart.merge").Str("product_id", in.ProductID).Msg("fallo de almacenamiento")
			return nil, domain.ErrUnavailable
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if i := work.FindItem(in.ProductID); i >= 0 {
			work.Items[i].Quantity += in.Quantity
		} else {
			work.Items = append(work.Items, entity.CartItem{ProductID: in.ProductID, Quantity: in.Quantity})
		}
	}

	if err := uc.repo.Update(&work); err != nil {
		uc.log.Error().Err(err).Str("op", "cart.merge").Str("user_id", userID).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	return toCartResponse(&work), nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	if c == nil {
		return nil
	}
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.CartResponse{ID: c.ID, UserID: c.UserID, Items: items}
}
