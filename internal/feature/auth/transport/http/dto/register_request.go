package dto

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
