package dto

// LoginRequest body para POST /api/auth/login (personal: dueño o trabajador).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CustomerLoginRequest body para POST /api/auth/customer-login.
type CustomerLoginRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

// UserResponse datos públicos de un usuario.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
