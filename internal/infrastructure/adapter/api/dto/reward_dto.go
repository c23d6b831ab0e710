package dto

// RewardStatusResponse reports whether the daily reward is claimable
type RewardStatusResponse struct {
	CanClaim     bool  `json:"can_claim"`
	RewardAmount int64 `json:"reward_amount"`
}

// ClaimResponse is the outcome of a successful claim
type ClaimResponse struct {
	Success      bool  `json:"success"`
	RewardAmount int64 `json:"reward_amount"`
	NewBalance   int64 `json:"new_balance"`
}
