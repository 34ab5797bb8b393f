package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// ProductExists verifica contra el catálogo que el productId del cuerpo
// referencia un producto existente antes de dejar pasar la petición. El libro
// mayor de inventario no re-valida: esta es la frontera responsable de esa
// comprobación. La lectura es un snapshot; un borrado concurrente del
// producto entre la comprobación y la escritura dependiente se acepta.
func ProductExists(products *usecase.ProductUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			ProductID string `json:"productId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		if body.ProductID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
		}
		product, err := products.GetByID(body.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId inválido"})
			}
			return storeError(c, err)
		}
		if product == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el producto no existe"})
		}
		return c.Next()
	}
}
