package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akazantsev/pricewatch/internal/application/auth"
	"github.com/akazantsev/pricewatch/internal/application/importer"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

// RouterDeps carries everything the router wires up.
type RouterDeps struct {
	CategoryUC    *usecase.CategoryUseCase
	SubcategoryUC *usecase.SubcategoryUseCase
	ProductUC     *usecase.ProductUseCase
	PriceListUC   *usecase.PriceListUseCase
	PriceUC       *usecase.PriceUseCase
	StoreUC       *usecase.StoreUseCase
	AuthUC        *auth.AuthUseCase
	Importer      *importer.Importer
	SheetReader   importer.SheetReader
	JWTSecret     string
}

// Router registers the API routes. Reads accept any authenticated role;
// mutations and imports require admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	read := RequireRole(entity.RoleAdmin, entity.RoleUser)
	write := RequireAdmin()

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", write, categoryHandler.Create)
	categories.Get("/", read, categoryHandler.List)
	categories.Get("/:id", read, categoryHandler.GetByID)
	categories.Put("/", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)

	subcategories := protected.Group("/subcategories")
	subcategoryHandler := NewSubcategoryHandler(deps.SubcategoryUC)
	subcategories.Post("/", write, subcategoryHandler.Create)
	subcategories.Get("/", read, subcategoryHandler.List)
	subcategories.Get("/:id", read, subcategoryHandler.GetByID)
	subcategories.Put("/", write, subcategoryHandler.Update)
	subcategories.Delete("/:id", write, subcategoryHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", write, productHandler.Create)
	products.Get("/search", read, productHandler.Search)
	products.Get("/:id", read, productHandler.GetByID)
	products.Put("/", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)

	priceLists := protected.Group("/price-lists")
	priceListHandler := NewPriceListHandler(deps.PriceListUC)
	priceLists.Post("/", write, priceListHandler.Create)
	priceLists.Get("/", read, priceListHandler.List)
	priceLists.Get("/compare", read, priceListHandler.Compare)
	priceLists.Get("/dynamics", read, priceListHandler.Dynamics)
	priceLists.Get("/:id", read, priceListHandler.GetByID)
	priceLists.Post("/:id/recompute", write, priceListHandler.Recompute)
	priceLists.Put("/", write, priceListHandler.Update)
	priceLists.Delete("/:id", write, priceListHandler.Delete)

	prices := protected.Group("/prices")
	priceHandler := NewPriceHandler(deps.PriceUC)
	prices.Post("/", write, priceHandler.Create)
	prices.Get("/price-list/:priceListId", read, priceHandler.ListBetween)
	prices.Get("/:id", read, priceHandler.GetByID)
	prices.Put("/", write, priceHandler.Update)
	prices.Delete("/:id", write, priceHandler.Delete)

	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", write, storeHandler.Create)
	stores.Get("/", read, storeHandler.List)
	stores.Get("/search", read, storeHandler.Search)
	stores.Get("/:id", read, storeHandler.GetByID)
	stores.Put("/", write, storeHandler.Update)
	stores.Delete("/:id", write, storeHandler.Delete)

	imports := protected.Group("/import", write)
	importHandler := NewImportHandler(deps.Importer, deps.SheetReader)
	imports.Post("/products", importHandler.Products)
	imports.Post("/price-lists", importHandler.PriceLists)
	imports.Post("/prices", importHandler.Prices)
}
