package handler

import (
	"net/http"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login, token refresh and whoami.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the auth endpoints. Whoami needs an authenticated
// caller, the rest are public.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh", h.Refresh)
	router.GET("/whoami", authMW, h.Whoami)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenPairResponse{
		Message: "User registered successfully",
		Access:  access,
		Refresh: refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Access:  access,
		Refresh: refresh,
		User:    dto.FromModelToUserSummary(user),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.authService.RefreshTokens(req.Refresh)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenPairResponse{
		Message: "Token refreshed successfully",
		Access:  access,
		Refresh: refresh,
	})
}

func (h *AuthHandler) Whoami(c *gin.Context) {
	caller := callerFromContext(c)

	user, err := h.authService.GetUser(caller.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserSummary(user))
}
