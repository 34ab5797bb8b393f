package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	InventoryUC *inventory.UseCase
	CartUC      *cart.UseCase
	AuthUC      *auth.AuthUseCase
	Hub         *ws.Hub
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Users (protegido)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Cart: el listado global es público; el carrito propio requiere token
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := api.Group("/cart")
	cartGroup.Get("/all", cartHandler.GetAll)
	cartGroup.Get("/", AuthMiddleware(deps.JWTSecret), cartHandler.GetOrCreate)
	cartGroup.Put("/", AuthMiddleware(deps.JWTSecret), cartHandler.Merge)

	// Inventory: la creación pasa por la verificación de existencia del
	// producto; el libro mayor no re-valida.
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/", ProductExists(deps.ProductUC), inventoryHandler.Create)
	invGroup.Post("/update-quantity/:id", inventoryHandler.AdjustQuantity)
	invGroup.Post("/reset-quantity/:id", inventoryHandler.ResetQuantity)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", inventoryHandler.SetQuantity)
	invGroup.Delete("/:id", inventoryHandler.Delete)

	// Canal en vivo de cambios de inventario
	app.Use("/ws/inventory", WSUpgrade)
	app.Get("/ws/inventory", WSInventory(deps.Hub))
}
