package user

import (
	"sutra-be/internal/address"
)

type AppUser struct {
	UID         string                    `json:"uid"`
	Email       string                    `json:"email,omitempty"`
	DisplayName string                    `json:"displayName,omitempty"`
	Phone       string                    `json:"phone,omitempty"`
	Role        string                    `json:"role"`
	IsAdmin     bool                      `json:"isAdmin"`
	Addresses   []address.ShippingAddress `json:"addresses"`
}

type LoginInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=120"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is what the API returns after any call that reissues the token.
type Session struct {
	Token     string   `json:"token"`
	SessionID string   `json:"sessionId"`
	User      *AppUser `json:"user,omitempty"`
}

type Options struct {
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
}
