package cart_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	userID    = "64b0000000000000000000aa"
	productA  = "64b0000000000000000000bb"
	productB  = "64b0000000000000000000cc"
	productNo = "64b0000000000000000000ff" // no existe en el catálogo
)

var errStore = errors.New("fallo simulado del almacén")

// fakeCartRepo implementación en memoria del puerto de carritos.
type fakeCartRepo struct {
	byUser  map[string]*entity.Cart
	nextID  int
	updates int
	failAll bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byUser: make(map[string]*entity.Cart)}
}

func (f *fakeCartRepo) List() ([]*entity.Cart, error) {
	if f.failAll {
		return nil, errStore
	}
	out := make([]*entity.Cart, 0, len(f.byUser))
	for _, c := range f.byUser {
		cp := cloneCart(c)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeCartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	if f.failAll {
		return nil, errStore
	}
	c, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (f *fakeCartRepo) GetOrCreate(userID string) (*entity.Cart, error) {
	if f.failAll {
		return nil, errStore
	}
	if c, ok := f.byUser[userID]; ok {
		return cloneCart(c), nil
	}
	f.nextID++
	c := &entity.Cart{
		ID:     fmt.Sprintf("64b00000000000000000%04x", f.nextID),
		UserID: userID,
		Items:  []entity.CartItem{},
	}
	f.byUser[userID] = c
	return cloneCart(c), nil
}

func (f *fakeCartRepo) Update(cart *entity.Cart) error {
	if f.failAll {
		return errStore
	}
	f.updates++
	f.byUser[cart.UserID] = cloneCart(cart)
	return nil
}

func cloneCart(c *entity.Cart) *entity.Cart {
	items := make([]entity.CartItem, len(c.Items))
	copy(items, c.Items)
	return &entity.Cart{ID: c.ID, UserID: c.UserID, Items: items}
}

// fakeProductRepo catálogo mínimo: solo existen productA y productB.
type fakeProductRepo struct{}

func (fakeProductRepo) List() ([]*entity.Product, error) { return nil, nil }

func (fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if id == productA || id == productB {
		return &entity.Product{ID: id, Name: "producto " + id[len(id)-2:], Price: decimal.NewFromInt(10)}, nil
	}
	return nil, nil
}

func (fakeProductRepo) GetByName(string) (*entity.Product, error) { return nil, nil }
func (fakeProductRepo) Create(*entity.Product) error              { return nil }
func (fakeProductRepo) Update(*entity.Product) error              { return nil }
func (fakeProductRepo) Delete(string) error                       { return nil }

func setup(t *testing.T) (*cart.UseCase, *fakeCartRepo) {
	t.Helper()
	repo := newFakeCartRepo()
	return cart.NewUseCase(repo, fakeProductRepo{}, nil), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// GetOrCreate
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreate_CreaCarritoVacio(t *testing.T) {
	uc, _ := setup(t)

	c, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, userID, c.UserID)
	assert.Empty(t, c.Items)
}

func TestGetOrCreate_Idempotente(t *testing.T) {
	uc, _ := setup(t)

	first, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	second, err := uc.GetOrCreate(userID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "dos llamadas seguidas deben devolver el mismo carrito")
}

func TestGetOrCreate_UserIDInvalido_Rechazado(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.GetOrCreate("no-es-un-id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_AgregaLineasNuevas(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)

	c, err := uc.Merge(userID, []dto.CartItemRequest{
		{ProductID: productA, Quantity: 2},
		{ProductID: productB, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestMerge_AcumulaSobreLineaExistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)

	_, err = uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 2}})
	require.NoError(t, err)

	c, err := uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity, "el merge acumula, no reemplaza")
}

func TestMerge_LineasRepetidasEnElLote_Acumulan(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)

	c, err := uc.Merge(userID, []dto.CartItemRequest{
		{ProductID: productA, Quantity: 2},
		{ProductID: productA, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestMerge_ProductoInexistente_TodoONada(t *testing.T) {
	uc, repo := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	_, err = uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 1}})
	require.NoError(t, err)
	updatesBefore := repo.updates

	_, err = uc.Merge(userID, []dto.CartItemRequest{
		{ProductID: productB, Quantity: 4},
		{ProductID: productNo, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nada del lote fallido debe haberse persistido, ni siquiera la línea válida.
	c, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, productA, c.Items[0].ProductID)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, updatesBefore, repo.updates, "un lote rechazado no debe escribir en el almacén")
}

func TestMerge_CantidadNoPositiva_Rechazada(t *testing.T) {
	uc, repo := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	updatesBefore := repo.updates

	_, err = uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: -2}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, updatesBefore, repo.updates)
}

func TestMerge_SinCarritoPrevio_NotFound(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMerge_LoteVacio_NoCambiaNada(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)

	c, err := uc.Merge(userID, nil)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestMerge_FalloDeAlmacen_Unavailable(t *testing.T) {
	uc, repo := setup(t)
	_, err := uc.GetOrCreate(userID)
	require.NoError(t, err)
	repo.failAll = true

	_, err = uc.Merge(userID, []dto.CartItemRequest{{ProductID: productA, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
