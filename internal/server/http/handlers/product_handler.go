package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/server/http/dto"
)

// ProductHandler manages the product catalog endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Add handles POST /api/products. Re-adding an existing product merges its
// quantity and answers 200 instead of 201.
func (h *ProductHandler) Add(c *gin.Context) {
	var req dto.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.EAN == "" || req.Quantity < 0 || req.PriceUsers > req.PriceOriginal {
		c.Status(http.StatusBadRequest)
		return
	}

	candidate := &model.Product{
		Name:          req.Name,
		Series:        req.Series,
		PriceOriginal: req.PriceOriginal,
		PriceUsers:    req.PriceUsers,
		ExpDate:       req.ExpDate,
		EAN:           req.EAN,
		Category:      req.Category,
		StoreID:       req.StoreID,
		Quantity:      req.Quantity,
		PhotoURL:      req.PhotoURL,
	}

	product, merged, err := h.facade.AddProduct(c.Request.Context(), candidate)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrMalformedRecord):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	c.JSON(status, toProductResponse(product))
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	records, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []model.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func toProductResponse(product *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		EAN:           product.EAN,
		Series:        product.Series,
		PriceOriginal: product.PriceOriginal,
		PriceUsers:    product.PriceUsers,
		ExpDate:       product.ExpDate,
		Category:      product.Category,
		StoreID:       product.StoreID,
		Quantity:      product.Quantity,
		PhotoURL:      product.PhotoURL,
	}
}
