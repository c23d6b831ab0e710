package handler

import (
	"net/http"

	domainerr "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	adminUseCase "gift-economy/internal/domain/usecase/admin"
	"gift-economy/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles privileged HTTP requests. Every operation resolves
// the caller from the X-Admin-Username header and lets the use case layer
// decide whether that account holds the privilege.
type AdminHandler struct {
	adminService *adminUseCase.Service
	logger       coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(adminService *adminUseCase.Service, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// ListUsers handles the GET /admin/users endpoint
func (h *AdminHandler) ListUsers(c *gin.Context) {
	caller := adminUsername(c)
	accounts, err := h.adminService.ListAccounts(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.UserListResponse{Users: make([]dto.AdminUserView, 0, len(accounts))}
	for _, a := range accounts {
		resp.Users = append(resp.Users, dto.AdminUserView{
			ID:        a.ID,
			Username:  a.Username,
			Balance:   a.Balance(),
			IsAdmin:   a.IsAdmin,
			IsBanned:  a.IsBanned,
			CreatedAt: a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustBalance handles the POST /admin/users/:username/balance endpoint
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Coins amount is required",
		})
		return
	}

	caller := adminUsername(c)
	target := c.Param("username")
	account, err := h.adminService.AdjustBalance(c.Request.Context(), caller, target, req.Coins)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Admin balance adjustment", map[string]any{
		"admin":      caller,
		"target":     target,
		"coins":      req.Coins,
		"newBalance": account.Balance(),
	})
	newBalance := account.Balance()
	c.JSON(http.StatusOK, dto.AdminActionResponse{
		Success:    true,
		Message:    "Balance updated",
		NewBalance: &newBalance,
	})
}

// SetBan handles the POST /admin/users/:username/ban endpoint
func (h *AdminHandler) SetBan(c *gin.Context) {
	var req dto.SetBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format",
		})
		return
	}

	caller := adminUsername(c)
	target := c.Param("username")
	if _, err := h.adminService.SetBan(c.Request.Context(), caller, target, req.Ban); err != nil {
		respondError(c, err)
		return
	}

	message := "User unbanned"
	if req.Ban {
		message = "User banned"
	}
	h.logger.Info("Admin ban update", map[string]any{
		"admin":  caller,
		"target": target,
		"banned": req.Ban,
	})
	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true, Message: message})
}

// SetAdmin handles the POST /admin/users/:username/admin endpoint
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req dto.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format",
		})
		return
	}

	caller := adminUsername(c)
	target := c.Param("username")
	if _, err := h.adminService.SetAdmin(c.Request.Context(), caller, target, req.Grant); err != nil {
		respondError(c, err)
		return
	}

	message := "Admin privilege revoked"
	if req.Grant {
		message = "Admin privilege granted"
	}
	h.logger.Info("Admin privilege update", map[string]any{
		"admin":   caller,
		"target":  target,
		"granted": req.Grant,
	})
	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true, Message: message})
}

// AddGift handles the POST /admin/gifts endpoint
func (h *AdminHandler) AddGift(c *gin.Context) {
	var req dto.AddGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Gift name is required",
		})
		return
	}

	caller := adminUsername(c)
	giftID, err := h.adminService.AddGift(
		c.Request.Context(), caller, req.Name, req.Description, req.Price, req.Icon, req.Category,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Gift added to catalog", map[string]any{
		"admin":  caller,
		"giftId": giftID,
		"name":   req.Name,
	})
	c.JSON(http.StatusCreated, dto.AddGiftResponse{
		Success: true,
		GiftID:  giftID,
		Message: "Gift created",
	})
}
