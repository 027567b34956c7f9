package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/server/http/dto"
)

// RedemptionHandler manages the redemption endpoint.
type RedemptionHandler struct {
	facade RedemptionFacade
}

// NewRedemptionHandler constructs RedemptionHandler.
func NewRedemptionHandler(facade RedemptionFacade) *RedemptionHandler {
	return &RedemptionHandler{facade: facade}
}

// Redeem handles POST /api/redemptions.
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req dto.RedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.Redeem(c.Request.Context(), req.Code, req.StoreID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity),
			errors.Is(err, domainErrors.ErrZeroPrice),
			errors.Is(err, domainErrors.ErrMalformedRecord):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.RedemptionResponse{
		StorePoints: result.StorePoints,
		UserPoints:  result.UserPoints,
	})
}
