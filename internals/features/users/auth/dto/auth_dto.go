package dto

import "strings"

type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required,min=3,max=200"`
	Gender          string `json:"gender" validate:"required,oneof=male female"`
	Age             int    `json:"age" validate:"required,gte=5,lte=120"`
	Phone           string `json:"phone" validate:"required,max=30"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Country         string `json:"country" validate:"required,max=100"`
	ReferralSource  string `json:"referral_source"`
}

func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Country = strings.TrimSpace(r.Country)
	r.ReferralSource = strings.TrimSpace(r.ReferralSource)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ProfileUpdateRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Country  *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gte=5,lte=120"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
