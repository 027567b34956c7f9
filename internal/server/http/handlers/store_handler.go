package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/server/http/dto"
)

// StoreHandler manages store registration and the ranking endpoint.
type StoreHandler struct {
	facade StoreFacade
}

// NewStoreHandler constructs StoreHandler.
func NewStoreHandler(facade StoreFacade) *StoreHandler {
	return &StoreHandler{facade: facade}
}

// Register handles POST /api/stores.
func (h *StoreHandler) Register(c *gin.Context) {
	var req dto.RegisterStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Password == "" || len(req.Location) != 2 {
		c.Status(http.StatusBadRequest)
		return
	}

	location := model.GeoPoint{Lat: req.Location[0], Lon: req.Location[1]}
	store, city, err := h.facade.RegisterStore(c.Request.Context(), req.Name, location, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrIdentifierSpaceExhausted):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.StoreResponse{
		ID:       store.ID,
		Name:     store.Name,
		City:     city,
		Location: []float64{store.Location.Lat, store.Location.Lon},
		Points:   store.Points,
	})
}

// Ranking handles GET /api/ranking/stores.
func (h *StoreHandler) Ranking(c *gin.Context) {
	entries, err := h.facade.StoresRanking(c.Request.Context(), c.Query("from"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.RankEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.RankEntryResponse{
			Place:    entry.Place,
			ID:       entry.StoreID,
			Name:     entry.Name,
			Points:   entry.Points,
			Location: []float64{entry.Location.Lat, entry.Location.Lon},
		})
	}
	c.JSON(http.StatusOK, response)
}
