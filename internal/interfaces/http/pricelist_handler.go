package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
)

// PriceListHandler serves price lists, comparison and dynamics (protected).
type PriceListHandler struct {
	uc *usecase.PriceListUseCase
}

// NewPriceListHandler builds the handler.
func NewPriceListHandler(uc *usecase.PriceListUseCase) *PriceListHandler {
	return &PriceListHandler{uc: uc}
}

// Create godoc
// @Summary      Create a price list, deriving current price from its history
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceListDTO  true  "Price list data (id must be 0)"
// @Success      201   {object}  dto.PriceListDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-lists [post]
func (h *PriceListHandler) Create(c *fiber.Ctx) error {
	var in dto.PriceListDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List all price lists with their histories
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.PriceListDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.FindAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one price list with its history
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Price list id"
// @Success      200  {object}  dto.PriceListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [get]
func (h *PriceListHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.FindByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Compare godoc
// @Summary      Compare current prices across stores for the given products
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        product_ids  query  string  true   "Comma-separated product ids"
// @Param        store_ids    query  string  false  "Comma-separated store ids"
// @Success      200  {array}   dto.PriceListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/compare [get]
func (h *PriceListHandler) Compare(c *fiber.Ctx) error {
	productIDs, err := idListQuery(c, "product_ids")
	if err != nil {
		return writeError(c, err)
	}
	storeIDs, err := idListQuery(c, "store_ids")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Compare(c.Context(), dto.PriceComparisonRequest{ProductIDs: productIDs, StoreIDs: storeIDs})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dynamics godoc
// @Summary      Price history windows across stores for the given products
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        product_ids  query  string  true   "Comma-separated product ids"
// @Param        store_ids    query  string  false  "Comma-separated store ids"
// @Param        start_date   query  string  true   "Window start (YYYY-MM-DD, inclusive)"
// @Param        end_date     query  string  true   "Window end (YYYY-MM-DD, inclusive)"
// @Success      200  {array}   dto.PriceListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/dynamics [get]
func (h *PriceListHandler) Dynamics(c *fiber.Ctx) error {
	productIDs, err := idListQuery(c, "product_ids")
	if err != nil {
		return writeError(c, err)
	}
	storeIDs, err := idListQuery(c, "store_ids")
	if err != nil {
		return writeError(c, err)
	}
	start, err := dateQuery(c, "start_date")
	if err != nil {
		return writeError(c, err)
	}
	end, err := dateQuery(c, "end_date")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CompareDynamics(c.Context(), dto.PriceDynamicsRequest{
		ProductIDs: productIDs,
		StoreIDs:   storeIDs,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Re-derive the current price from the stored history
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Price list id"
// @Success      200  {object}  dto.PriceListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/recompute [post]
func (h *PriceListHandler) Recompute(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.RecomputeCurrentPrice(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.FindByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a price list, replacing its history when one is sent
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceListDTO  true  "Price list data (existing id)"
// @Success      200   {object}  dto.PriceListDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/price-lists [put]
func (h *PriceListHandler) Update(c *fiber.Ctx) error {
	var in dto.PriceListDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a price list and its history
// @Tags         price-lists
// @Security     Bearer
// @Param        id  path  int  true  "Price list id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [delete]
func (h *PriceListHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
