package handler

import (
	"net/http"
	"strconv"

	"gift-economy/internal/domain/entity"
	domainerr "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	catalogUseCase "gift-economy/internal/domain/usecase/catalog"
	purchaseUseCase "gift-economy/internal/domain/usecase/purchase"
	"gift-economy/internal/infrastructure/adapter/api/dto"
	"gift-economy/internal/infrastructure/adapter/database"
	"github.com/gin-gonic/gin"
)

// GiftHandler handles catalog listing and purchase HTTP requests
type GiftHandler struct {
	catalogService *catalogUseCase.Service
	purchaser      *purchaseUseCase.Coordinator
	retryConfig    database.RetryConfig
	logger         coreport.Logger
}

// NewGiftHandler creates a new gift handler instance
func NewGiftHandler(
	catalogService *catalogUseCase.Service,
	purchaser *purchaseUseCase.Coordinator,
	retryConfig database.RetryConfig,
	logger coreport.Logger,
) *GiftHandler {
	return &GiftHandler{
		catalogService: catalogService,
		purchaser:      purchaser,
		retryConfig:    retryConfig,
		logger:         logger,
	}
}

// List handles the GET /gifts endpoint. With an X-User-Id header the
// entries carry that user's ownership state; without one the listing
// is anonymous.
func (h *GiftHandler) List(c *gin.Context) {
	userID, _ := userIDFromHeader(c)

	entries, err := h.catalogService.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Catalog listing failed", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	resp := dto.GiftListResponse{Gifts: make([]dto.GiftResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Gifts = append(resp.Gifts, catalogEntryResponse(e, userID != 0))
	}
	c.JSON(http.StatusOK, resp)
}

// Purchase handles the POST /gifts/:giftId/purchase endpoint
func (h *GiftHandler) Purchase(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Missing or invalid X-User-Id header",
		})
		return
	}

	giftIDParam := c.Param("giftId")
	giftID, err := strconv.ParseUint(giftIDParam, 10, 64)
	if err != nil || giftID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid gift ID format",
		})
		return
	}

	var result *purchaseUseCase.Result
	err = database.RetryOnTransientError(c.Request.Context(), h.retryConfig, func() error {
		var opErr error
		result, opErr = h.purchaser.Purchase(c.Request.Context(), userID, giftID)
		return opErr
	}, h.logger)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Gift purchased", map[string]any{
		"userId":     userID,
		"giftId":     giftID,
		"newBalance": result.NewBalance,
	})
	c.JSON(http.StatusOK, dto.PurchaseResponse{
		Success:    true,
		NewBalance: result.NewBalance,
	})
}

func catalogEntryResponse(e *entity.CatalogEntry, withOwnership bool) dto.GiftResponse {
	resp := dto.GiftResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Icon:        e.Icon,
		Category:    e.Category,
	}
	if withOwnership {
		purchased := e.Purchased
		resp.Purchased = &purchased
	}
	return resp
}
