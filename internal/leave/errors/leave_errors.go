package leaveerrors

import (
	"net/http"

	"leave-tracker/internal/shared/apperror"
)

var (
	ErrLeaveIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Leave ID is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		`Invalid status. Must be "approved" or "rejected"`,
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrUserIDRequired = apperror.New(
		apperror.CodeValidation,
		"User ID is required",
		http.StatusBadRequest,
	)
	ErrDatesRequired = apperror.New(
		apperror.CodeValidation,
		"At least one date is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrCoveringOfficerRequired = apperror.New(
		apperror.CodeValidation,
		"Covering Officer is required",
		http.StatusBadRequest,
	)
	ErrHalfDayPeriodRequired = apperror.New(
		apperror.CodeValidation,
		"half_day_period is required for half-day leave",
		http.StatusBadRequest,
	)
	ErrIDsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"At least one leave ID is required",
		http.StatusBadRequest,
	)
)
