package domain

import (
	"errors"
)

var (
	MessageSuccessRegister    = "registration successful, please verify your email"
	MessageSuccessLogin       = "login successful"
	MessageSuccessVerifyEmail = "email verified successfully"
	MessageSuccessGetMe       = "success get user profile"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedVerifyEmail = "failed to verify email"
	MessageFailedGetMe       = "failed to get user profile"

	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrCredentialsInvalid   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=30"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Country   string `json:"country"`
	}

	RegisterResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	MeResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Country   string `json:"country"`
		Verified  bool   `json:"verified"`
	}
)
