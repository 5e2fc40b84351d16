// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

// CreateUserReq represents the request body for POST /users.
type CreateUserReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserReq represents the request body for PUT/PATCH /users/:id.
// All fields are optional; omitted fields are left untouched.
type UpdateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsAdmin  *bool   `json:"is_admin"`
}
