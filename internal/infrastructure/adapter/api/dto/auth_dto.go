package dto

// AuthRequest is the body of both registration and login
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account. The credential digest never
// leaves the server.
type UserResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthResponse wraps the account returned by register and login
type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
