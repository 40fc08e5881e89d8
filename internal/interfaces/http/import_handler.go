package http

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/akazantsev/pricewatch/internal/application/importer"
	"github.com/akazantsev/pricewatch/internal/domain"
)

// ImportHandler serves the bulk xlsx uploads (admin only).
type ImportHandler struct {
	im     *importer.Importer
	reader importer.SheetReader
}

// NewImportHandler builds the handler.
func NewImportHandler(im *importer.Importer, reader importer.SheetReader) *ImportHandler {
	return &ImportHandler{im: im, reader: reader}
}

// readSheet extracts and parses the uploaded "file" form field.
func (h *ImportHandler) readSheet(c *fiber.Ctx) (*importer.Sheet, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: multipart field %q with an .xlsx file is required", domain.ErrBadRequest, "file")
	}
	return h.parse(fh)
}

func (h *ImportHandler) parse(fh *multipart.FileHeader) (*importer.Sheet, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return h.reader.Read(fh.Filename, f)
}

// Products godoc
// @Summary      Bulk-import products from an xlsx sheet
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Sheet: subcategoryId, name, brand, quantity, unit, manufacturer"
// @Success      201   {array}   dto.ProductDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/products [post]
func (h *ImportHandler) Products(c *fiber.Ctx) error {
	sheet, err := h.readSheet(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.im.ImportProducts(c.Context(), sheet)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PriceLists godoc
// @Summary      Bulk-import price lists from an xlsx sheet
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Sheet: storeId, productId, currentPrice"
// @Success      201   {array}   dto.PriceListDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/price-lists [post]
func (h *ImportHandler) PriceLists(c *fiber.Ctx) error {
	sheet, err := h.readSheet(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.im.ImportPriceLists(c.Context(), sheet)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Prices godoc
// @Summary      Bulk-import price-history entries from an xlsx sheet
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Sheet: priceListId, price, date"
// @Success      201   {array}   dto.PriceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/prices [post]
func (h *ImportHandler) Prices(c *fiber.Ctx) error {
	sheet, err := h.readSheet(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.im.ImportPrices(c.Context(), sheet)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
