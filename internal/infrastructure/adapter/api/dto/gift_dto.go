package dto

// GiftResponse is one catalog entry. Purchased is present only when the
// listing was requested for a specific user.
type GiftResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Purchased   *bool  `json:"purchased,omitempty"`
}

// GiftListResponse wraps the catalog listing
type GiftListResponse struct {
	Gifts []GiftResponse `json:"gifts"`
}

// PurchaseResponse is the outcome of a successful purchase
type PurchaseResponse struct {
	Success    bool  `json:"success"`
	NewBalance int64 `json:"new_balance"`
}

// AddGiftRequest is the admin request to append a catalog entry
type AddGiftRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
}

// AddGiftResponse confirms a catalog append
type AddGiftResponse struct {
	Success bool   `json:"success"`
	GiftID  uint64 `json:"gift_id"`
	Message string `json:"message"`
}
