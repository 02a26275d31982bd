package dto

import (
	"net/http"
	"strings"
)

// Normalized API error codes returned to clients.
const (
	ErrCodeUnknown      = "ERR_UNKNOWN"
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
	ErrCodeEmptyExport  = "ERR_EMPTY_EXPORT"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps normalized error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:      http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeEmptyExport:  http.StatusUnprocessableEntity,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
}

// DomainErrorCodeMapping maps domain error codes to normalized API codes.
// Codes not listed here fall through to the prefix rules in NormalizeErrorCode.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ITEM_NOT_FOUND":     ErrCodeNotFound,
	"LINE_NOT_FOUND":     ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeConflict,
	"IN_USE":             ErrCodeConflict,
	"BED_OCCUPIED":       ErrCodeConflict,
	"DUPLICATE_MEDICINE": ErrCodeConflict,
	"INVALID_STATE":      ErrCodeInvalidState,
	"EMPTY_PURCHASE":     ErrCodeBusinessRule,
	"LAST_LINE":          ErrCodeBusinessRule,
	"INSUFFICIENT_STOCK": ErrCodeBusinessRule,
	"EXPORT_EMPTY":       ErrCodeEmptyExport,
}

// NormalizeErrorCode converts a domain error code into a normalized API code.
// INVALID_* codes are treated as bad input; *_NOT_FOUND as missing records.
func NormalizeErrorCode(code string) string {
	if normalized, ok := DomainErrorCodeMapping[code]; ok {
		return normalized
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return ErrCodeBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return ErrCodeNotFound
	case strings.HasPrefix(code, "ALREADY_"):
		return ErrCodeConflict
	}
	return ErrCodeUnknown
}

// GetHTTPStatus returns the HTTP status for a normalized error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
