package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
)

// PriceHandler serves individual price-history entries (protected).
type PriceHandler struct {
	uc *usecase.PriceUseCase
}

// NewPriceHandler builds the handler.
func NewPriceHandler(uc *usecase.PriceUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// Create godoc
// @Summary      Add a history entry and re-derive the list's current price
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceDTO  true  "Price data (id must be 0)"
// @Success      201   {object}  dto.PriceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) Create(c *fiber.Ctx) error {
	var in dto.PriceDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get one history entry
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Price id"
// @Success      200  {object}  dto.PriceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [get]
func (h *PriceHandler) GetByID(c *fiber.Ctx) error {
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

// ListBetween godoc
// @Summary      History entries of a price list inside an inclusive date window
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        priceListId  path   int     true  "Price list id"
// @Param        start_date   query  string  true  "Window start (YYYY-MM-DD)"
// @Param        end_date     query  string  true  "Window end (YYYY-MM-DD)"
// @Success      200  {array}   dto.PriceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/price-list/{priceListId} [get]
func (h *PriceHandler) ListBetween(c *fiber.Ctx) error {
	priceListID, err := parseID(c, "priceListId")
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
	out, err := h.uc.FindBetween(c.Context(), priceListID, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a history entry and re-derive the affected lists
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceDTO  true  "Price data (existing id)"
// @Success      200   {object}  dto.PriceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices [put]
func (h *PriceHandler) Update(c *fiber.Ctx) error {
	var in dto.PriceDTO
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
// @Summary      Delete a history entry and re-derive the list's current price
// @Tags         prices
// @Security     Bearer
// @Param        id  path  int  true  "Price id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [delete]
func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
