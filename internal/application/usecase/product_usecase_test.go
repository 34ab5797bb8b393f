package usecase_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// fakeProductRepo implementación en memoria del puerto del catálogo.
type fakeProductRepo struct {
	byID   map[string]*entity.Product
	nextID int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Create(product *entity.Product) error {
	f.nextID++
	product.ID = fmt.Sprintf("64c00000000000000000%04x", f.nextID)
	cp := *product
	f.byID[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Update(product *entity.Product) error {
	cp := *product
	f.byID[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func setup(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	return usecase.NewProductUseCase(newFakeProductRepo(), nil)
}

func strPtr(s string) *string                   { return &s }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_OK(t *testing.T) {
	uc := setup(t)

	p, err := uc.Create(dto.CreateProductRequest{
		Name:        "  Teclado mecánico  ",
		Price:       decimal.RequireFromString("49.99"),
		Description: "switches rojos",
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Teclado mecánico", p.Name, "el nombre debe recortarse")
	assert.True(t, p.Price.Equal(decimal.RequireFromString("49.99")))
}

func TestProductCreate_NombreDuplicado_Conflicto(t *testing.T) {
	uc := setup(t)
	_, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Mouse", Price: decimal.NewFromInt(12)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := setup(t)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"nombre vacío", dto.CreateProductRequest{Name: "   ", Price: decimal.NewFromInt(1)}},
		{"nombre demasiado largo", dto.CreateProductRequest{Name: strings.Repeat("x", 256), Price: decimal.NewFromInt(1)}},
		{"precio negativo", dto.CreateProductRequest{Name: "ok", Price: decimal.NewFromInt(-1)}},
		{"precio con más de dos decimales", dto.CreateProductRequest{Name: "ok", Price: decimal.RequireFromString("9.999")}},
		{"descripción demasiado larga", dto.CreateProductRequest{Name: "ok", Price: decimal.NewFromInt(1), Description: strings.Repeat("y", 1001)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreate_PrecioCero_Permitido(t *testing.T) {
	uc := setup(t)

	p, err := uc.Create(dto.CreateProductRequest{Name: "Muestra gratis", Price: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_Parcial(t *testing.T) {
	uc := setup(t)
	created, err := uc.Create(dto.CreateProductRequest{Name: "Monitor", Price: decimal.NewFromInt(200), Description: "24 pulgadas"})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: decPtr(decimal.RequireFromString("179.90"))})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Monitor", updated.Name, "los campos omitidos no deben cambiar")
	assert.Equal(t, "24 pulgadas", updated.Description)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("179.90")))
}

func TestProductUpdate_NombreDeOtroProducto_Conflicto(t *testing.T) {
	uc := setup(t)
	_, err := uc.Create(dto.CreateProductRequest{Name: "Monitor", Price: decimal.NewFromInt(200)})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(50)})
	require.NoError(t, err)

	_, err = uc.Update(second.ID, dto.UpdateProductRequest{Name: strPtr("Monitor")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_MismoNombrePropio_Permitido(t *testing.T) {
	uc := setup(t)
	created, err := uc.Create(dto.CreateProductRequest{Name: "Monitor", Price: decimal.NewFromInt(200)})
	require.NoError(t, err)

	// Renombrar al nombre que ya tiene no es conflicto consigo mismo.
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: strPtr("Monitor")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Monitor", updated.Name)
}

func TestProductUpdate_Inexistente_NilNil(t *testing.T) {
	uc := setup(t)

	p, err := uc.Update("64c0000000000000000000ff", dto.UpdateProductRequest{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductGetByID_IDInvalido_Rechazado(t *testing.T) {
	uc := setup(t)

	_, err := uc.GetByID("123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_OK(t *testing.T) {
	uc := setup(t)
	created, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductDelete_Inexistente_NotFound(t *testing.T) {
	uc := setup(t)

	err := uc.Delete("64c0000000000000000000ff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
