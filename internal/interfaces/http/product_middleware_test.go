package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

const knownProductID = "64e0000000000000000000bb"

// fakeCatalogRepo catálogo con un único producto conocido.
type fakeCatalogRepo struct{}

func (fakeCatalogRepo) List() ([]*entity.Product, error) { return nil, nil }

func (fakeCatalogRepo) GetByID(id string) (*entity.Product, error) {
	if id == knownProductID {
		return &entity.Product{ID: id, Name: "Monitor", Price: decimal.NewFromInt(200)}, nil
	}
	return nil, nil
}

func (fakeCatalogRepo) GetByName(string) (*entity.Product, error) { return nil, nil }
func (fakeCatalogRepo) Create(*entity.Product) error              { return nil }
func (fakeCatalogRepo) Update(*entity.Product) error              { return nil }
func (fakeCatalogRepo) Delete(string) error                       { return nil }

func buildGuardedApp() *fiber.App {
	products := usecase.NewProductUseCase(fakeCatalogRepo{}, nil)
	app := fiber.New()
	app.Post("/inventory",
		apphttp.ProductExists(products),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusCreated)
		},
	)
	return app
}

func postInventory(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProductExists_ProductoConocido_Pasa(t *testing.T) {
	app := buildGuardedApp()
	resp := postInventory(t, app, `{"productId":"`+knownProductID+`","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestProductExists_ProductoDesconocido_Retorna404(t *testing.T) {
	app := buildGuardedApp()
	resp := postInventory(t, app, `{"productId":"64e0000000000000000000ff","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestProductExists_SinProductID_Retorna400(t *testing.T) {
	app := buildGuardedApp()
	resp := postInventory(t, app, `{"quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductExists_IDMalformado_Retorna400(t *testing.T) {
	app := buildGuardedApp()
	resp := postInventory(t, app, `{"productId":"123","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}
