package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=6"`
	// Role is the requested role. Admin callers have it overridden to User;
	// SuperAdmin callers must send User or Admin.
	Role string `json:"role"`
}

type updateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=100"`
	Email    string `json:"email"    validate:"omitempty,email,max=256"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"omitempty,min=6"`
}
