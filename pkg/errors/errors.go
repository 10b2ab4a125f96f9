package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "MissingField", "NotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, identifier, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "MissingField", "InvalidLocation", "ValidationError", "InvalidImageData", "InvalidIdentifier":
		return http.StatusBadRequest
	case "NotFound":
		return http.StatusNotFound
	case "ExternalServiceError":
		return http.StatusBadGateway
	case "PersistenceError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewMissingField(field string) *StandardError {
	return NewStandardError("MissingField", fmt.Sprintf("%s is required", field), fmt.Sprintf("Field: %s", field))
}

func NewInvalidLocation(location string) *StandardError {
	return NewStandardError("InvalidLocation", "location is not a valid storage location", fmt.Sprintf("Location: %s", location))
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewInvalidIdentifier(id string) *StandardError {
	return NewStandardError("InvalidIdentifier", "invalid item id", fmt.Sprintf("Item ID: %s", id))
}

func NewNotFound(id string) *StandardError {
	return NewStandardError("NotFound", "item not found", fmt.Sprintf("Item ID: %s", id))
}

func NewInvalidImageData(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InvalidImageData", "invalid image data", details)
}

func NewExternalServiceError(service string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("ExternalServiceError", fmt.Sprintf("%s request failed", service), details)
}

func NewPersistenceError(operation string, err error) *StandardError {
	return NewStandardError("PersistenceError", fmt.Sprintf("store operation failed: %s", operation), err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
