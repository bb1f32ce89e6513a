package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

var validate = validator.New()

func validRegister() RegisterRequest {
	return RegisterRequest{
		FullName:        "أحمد محمد",
		Gender:          "male",
		Age:             25,
		Phone:           "0501111111",
		Email:           "ahmad@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Country:         "السعودية",
	}
}

func TestRegisterRequestValid(t *testing.T) {
	req := validRegister()
	assert.NoError(t, validate.Struct(req))
}

func TestRegisterRequestInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"short name", func(r *RegisterRequest) { r.FullName = "اب" }},
		{"bad gender", func(r *RegisterRequest) { r.Gender = "other" }},
		{"age too low", func(r *RegisterRequest) { r.Age = 3 }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "123" }},
		{"missing country", func(r *RegisterRequest) { r.Country = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			assert.Error(t, validate.Struct(req))
		})
	}
}

func TestRegisterNormalize(t *testing.T) {
	req := validRegister()
	req.Email = "  Ahmad@Example.COM "
	req.FullName = " أحمد محمد "
	req.Normalize()

	assert.Equal(t, "ahmad@example.com", req.Email)
	assert.Equal(t, "أحمد محمد", req.FullName)
}

func TestResetPasswordRequestTokenLength(t *testing.T) {
	req := ResetPasswordRequest{Email: "a@b.com", Token: "123456", NewPassword: "secret1"}
	assert.NoError(t, validate.Struct(req))

	req.Token = "1234"
	assert.Error(t, validate.Struct(req))
}
