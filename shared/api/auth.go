package api

// Request DTOs

type SignupRequest struct {
	Name     string `json:"name" validate:"required,notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72,letters_digits" msg:"Password must include letters and numbers"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// Response DTOs

type UserSummary struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type SignupResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
