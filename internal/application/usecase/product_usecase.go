package usecase

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 1000
)

// ProductUseCase casos de uso CRUD del catálogo de productos. La unicidad del
// nombre se verifica aquí y además la respalda el índice único del almacén.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, log: log}
}

// List devuelve todos los productos del catálogo.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		uc.log.Error().Err(err).Str("op", "product.list").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "product.get").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Create crea un producto. El nombre se recorta y debe ser único en el catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProductFields(name, in.Price, in.Description); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "product.create").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Name:        name,
		Price:       in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrDuplicate
		}
		uc.log.Error().Err(err).Str("op", "product.create").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. Devuelve (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "product.update").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || utf8.RuneCountInString(name) > maxNameLen {
			return nil, domain.ErrInvalidInput
		}
		// Otro producto no puede tener ya ese nombre
		other, err := uc.repo.GetByName(name)
		if err != nil {
			uc.log.Error().Err(err).Str("op", "product.update").Str("id", id).Msg("fallo de almacenamiento")
			return nil, domain.ErrUnavailable
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() || !in.Price.Equal(in.Price.Truncate(2)) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Description != nil {
		if utf8.RuneCountInString(*in.Description) > maxDescriptionLen {
			return nil, domain.ErrInvalidInput
		}
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrDuplicate
		}
		uc.log.Error().Err(err).Str("op", "product.update").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	if !entity.IsValidID(id) {
		return domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "product.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		uc.log.Error().Err(err).Str("op", "product.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	return nil
}

func validateProductFields(name string, price decimal.Decimal, description string) error {
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return domain.ErrInvalidInput
	}
	if price.IsNegative() || !price.Equal(price.Truncate(2)) {
		return domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
