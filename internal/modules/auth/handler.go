package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/terravista/estate-core/internal/middleware"
	"github.com/terravista/estate-core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts /auth. The login limiter is separate from authMW
// because login is the one mutating route that cannot carry a token yet.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, loginLimiter gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", loginLimiter, h.login)
	a.GET("/me", authMW, h.me)
	a.PUT("/change-password", authMW, h.changePassword)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}
	token, u, err := h.svc.Login(c.Request.Context(), dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrWrongPassword) {
			response.UnauthorizedMsg(c, "Invalid credentials")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, loginResponse{Token: token, User: u})
}

func (h *Handler) me(c *gin.Context) {
	response.OK(c, middleware.CurrentUser(c))
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Current and new password are required")
		return
	}
	u := middleware.CurrentUser(c)
	err := h.svc.ChangePassword(c.Request.Context(), u.ID.Hex(), dto.CurrentPassword, dto.NewPassword)
	switch {
	case err == nil:
		response.Message(c, "Password updated successfully")
	case errors.Is(err, ErrWrongPassword):
		response.BadRequest(c, "Current password is incorrect")
	case errors.Is(err, ErrPasswordTooShort):
		response.BadRequest(c, "New password must be at least 8 characters")
	case errors.Is(err, ErrUserNotFound):
		response.Unauthorized(c)
	default:
		h.log.Error("change password failed", zap.Error(err))
		response.InternalError(c)
	}
}
