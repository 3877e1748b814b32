package dto

import (
	"github.com/aarondl/null/v8"
)

// SignInRequest — вход либо по email, либо по номеру телефона.
// Незаполненное поле уходит на сервер как JSON null.
type SignInRequest struct {
	Email       null.String `json:"email"`
	PhoneNumber null.String `json:"phoneNumber"`
	Password    string      `json:"password"`
}

type SignUpRequest struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateCredentialRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SignInForm — то, что вводит пользователь до преобразования в запрос.
type SignInForm struct {
	Login    string `validate:"required"`
	Password string `validate:"required,min=8"`
}

type SignUpForm struct {
	Email           string `validate:"required,custom_email"`
	Phone           string `validate:"required,intl_phone"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type UpdateCredentialForm struct {
	OldPassword     string `validate:"required"`
	NewPassword     string `validate:"required,min=8,nefield=OldPassword"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}
