package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/server/http/dto"
)

// UserHandler manages user registration, profiles, tokens, and sessions.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Register handles POST /api/users. The response carries the final
// username, which may differ from the requested one.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrDuplicateIdentity):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Points:   user.Points,
	})
}

// Profile handles GET /api/users/:username.
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.facade.UserProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// QRToken handles GET /api/users/:username/qr.
func (h *UserHandler) QRToken(c *gin.Context) {
	token, err := h.facade.IssueToken(c.Request.Context(), c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	record := token.ToRecord()
	c.JSON(http.StatusOK, dto.TokenResponse{
		User: token.Owner,
		Code: token.Code,
		Date: record["date"].(string),
	})
}

// Session handles POST /api/sessions.
func (h *UserHandler) Session(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	validated, err := h.facade.ValidateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if !validated {
		c.JSON(http.StatusUnauthorized, dto.SessionResponse{Validated: false})
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Validated: true})
}
