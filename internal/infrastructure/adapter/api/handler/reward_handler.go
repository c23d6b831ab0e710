package handler

import (
	"net/http"

	domainerr "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	rewardUseCase "gift-economy/internal/domain/usecase/reward"
	"gift-economy/internal/infrastructure/adapter/api/dto"
	"gift-economy/internal/infrastructure/adapter/database"
	"github.com/gin-gonic/gin"
)

// RewardHandler handles daily reward HTTP requests
type RewardHandler struct {
	rewarder    *rewardUseCase.Coordinator
	retryConfig database.RetryConfig
	logger      coreport.Logger
}

// NewRewardHandler creates a new reward handler instance
func NewRewardHandler(
	rewarder *rewardUseCase.Coordinator,
	retryConfig database.RetryConfig,
	logger coreport.Logger,
) *RewardHandler {
	return &RewardHandler{
		rewarder:    rewarder,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

// Status handles the GET /rewards/status endpoint
func (h *RewardHandler) Status(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Missing or invalid X-User-Id header",
		})
		return
	}

	status, err := h.rewarder.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RewardStatusResponse{
		CanClaim:     status.CanClaim,
		RewardAmount: status.RewardAmount,
	})
}

// Claim handles the POST /rewards/claim endpoint
func (h *RewardHandler) Claim(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Missing or invalid X-User-Id header",
		})
		return
	}

	var result *rewardUseCase.ClaimResult
	err := database.RetryOnTransientError(c.Request.Context(), h.retryConfig, func() error {
		var opErr error
		result, opErr = h.rewarder.Claim(c.Request.Context(), userID)
		return opErr
	}, h.logger)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Daily reward claimed", map[string]any{
		"userId":     userID,
		"amount":     result.RewardAmount,
		"newBalance": result.NewBalance,
	})
	c.JSON(http.StatusOK, dto.ClaimResponse{
		Success:      true,
		RewardAmount: result.RewardAmount,
		NewBalance:   result.NewBalance,
	})
}
