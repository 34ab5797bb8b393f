package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// CartHandler maneja las peticiones HTTP del carrito. El userId sale del
// token verificado por el middleware de auth.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// GetAll godoc
// @Summary      Listar todos los carritos
// @Tags         cart
// @Produce      json
// @Success      200  {array}  dto.CartResponse
// @Router       /api/cart/all [get]
func (h *CartHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.GetAll()
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(out)
}

// GetOrCreate godoc
// @Summary      Obtener el carrito del usuario autenticado
// @Description  Si el usuario aún no tiene carrito se crea uno vacío.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) GetOrCreate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetOrCreate(userID)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(out)
}

// Merge godoc
// @Summary      Acumular líneas en el carrito del usuario autenticado
// @Description  El lote es todo-o-nada: si una línea referencia un producto
//               inexistente, el carrito queda intacto.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CartItemRequest  true  "Líneas a acumular"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart [put]
func (h *CartHandler) Merge(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var items []dto.CartItemRequest
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Creación perezosa: el primer merge de un usuario también crea su carrito.
	if _, err := h.uc.GetOrCreate(userID); err != nil {
		return storeError(c, err)
	}
	out, err := h.uc.Merge(userID, items)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(out)
}
