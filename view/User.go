package view

type User struct {
	Id          string `json:"userId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Membership  string `json:"membership"`
}

type SignUpRequest struct {
	UserId      string `json:"userId" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type SignUpResponse struct {
	Message string `json:"message"`
	UserId  string `json:"userId"`
	Success bool   `json:"success"`
}

type LoginRequest struct {
	UserId   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	UserId  string `json:"userId,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type EmailVerificationResponse struct {
	Verified bool `json:"verified"`
}
