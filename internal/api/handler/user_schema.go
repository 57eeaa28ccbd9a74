package handler

// --- Request / Response types ---

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,required"`
}

// updateUserRequest uses *bool so that a missing "active" is rejected
// instead of silently decoding to false.
type updateUserRequest struct {
	ID       string   `json:"id"       validate:"required"`
	Username string   `json:"username" validate:"required"`
	Active   *bool    `json:"active"   validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,required"`
	Password string   `json:"password,omitempty"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}

// userResponse is the public view of a user; the password hash never
// leaves the service.
type userResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   bool     `json:"active"`
}

// messageResponse is the acknowledgement envelope for mutations.
type messageResponse struct {
	Message string `json:"message"`
}
