package autherrors

import (
	"net/http"

	"leave-tracker/internal/shared/apperror"
)

var (
	ErrVerifyFieldsRequired = apperror.New(
		apperror.CodeValidation,
		"Paysheet number and email are required",
		http.StatusBadRequest,
	)
	ErrFirstLoginFieldsRequired = apperror.New(
		apperror.CodeValidation,
		"Paysheet number, email, and password are required",
		http.StatusBadRequest,
	)
	ErrLoginFieldsRequired = apperror.New(
		apperror.CodeValidation,
		"Email and password are required",
		http.StatusBadRequest,
	)
	ErrPaysheetRequired = apperror.New(
		apperror.CodeValidation,
		"Paysheet number is required",
		http.StatusBadRequest,
	)
	ErrPasswordTooShort = apperror.New(
		apperror.CodeValidation,
		"Password must be at least 6 characters",
		http.StatusBadRequest,
	)

	ErrIdentityMismatch = apperror.New(
		apperror.CodeNotFound,
		"Email and paysheet number do not match. Please check your details.",
		http.StatusNotFound,
	)
	ErrEmailNotFound = apperror.New(
		apperror.CodeNotFound,
		"Email not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrAlreadySetup = apperror.New(
		apperror.CodeAlreadySetup,
		"Account already set up. Please use regular login.",
		http.StatusBadRequest,
	).WithDetails(map[string]any{"already_setup": true})
	ErrFirstLoginRequired = apperror.New(
		apperror.CodeSetupRequired,
		"First login required. Please set up your account with email and paysheet number.",
		http.StatusBadRequest,
	).WithDetails(map[string]any{"first_login": true})
	ErrInvalidPassword = apperror.New(
		apperror.CodeInvalidCredentials,
		"Invalid password",
		http.StatusUnauthorized,
	)

	ErrTokenRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Access token required",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeForbidden,
		"Invalid or expired token",
		http.StatusForbidden,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue session token",
		http.StatusInternalServerError,
	)
)
