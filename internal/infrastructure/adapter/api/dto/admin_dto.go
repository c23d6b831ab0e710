package dto

import "time"

// AdminUserView is the account listing row shown in the admin panel.
// It carries the privilege flags the public UserResponse omits but never
// the credential digest.
type AdminUserView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse wraps the admin account listing
type UserListResponse struct {
	Users []AdminUserView `json:"users"`
}

// AdjustBalanceRequest applies a signed delta to the target's balance
type AdjustBalanceRequest struct {
	Coins int64 `json:"coins" binding:"required"`
}

// SetBanRequest flips the ban flag on the target
type SetBanRequest struct {
	Ban bool `json:"ban"`
}

// SetAdminRequest grants or revokes administrative privilege on the target
type SetAdminRequest struct {
	Grant bool `json:"grant"`
}

// AdminActionResponse confirms a gated mutation
type AdminActionResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NewBalance *int64 `json:"new_balance,omitempty"`
}
