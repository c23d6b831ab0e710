package handler

import (
	"net/http"

	domainerr "gift-economy/internal/domain/error"
	"gift-economy/internal/domain/entity"
	coreport "gift-economy/internal/domain/port/core"
	authUseCase "gift-economy/internal/domain/usecase/auth"
	"gift-economy/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *authUseCase.Service
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService *authUseCase.Service, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles the POST /auth/register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Username and password are required",
		})
		return
	}

	account, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Registration failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		respondError(c, err)
		return
	}

	h.logger.Info("User registered", map[string]any{
		"userId":   account.ID,
		"username": account.Username,
	})
	c.JSON(http.StatusCreated, authResponse(account))
}

// Login handles the POST /auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Username and password are required",
		})
		return
	}

	account, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse(account))
}

func authResponse(account *entity.Account) dto.AuthResponse {
	return dto.AuthResponse{
		Success: true,
		User: dto.UserResponse{
			ID:       account.ID,
			Username: account.Username,
			Balance:  account.Balance(),
			IsAdmin:  account.IsAdmin,
		},
	}
}
