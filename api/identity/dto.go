package identity

// AuthRequest carries curator credentials.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	MazesCreated int    `json:"mazes_created"`
	Token        string `json:"token"`
}
