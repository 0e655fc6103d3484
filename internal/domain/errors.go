//go:generate go run github.com/abice/go-enum@v0.5.6 --marshal

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("already exists")

// ENUM(unknown, bad_param, missing_param, already_registered, not_found, not_acceptable, unprocessable)
type ApiErrorType int

type ApiError struct {
	Type    ApiErrorType
	Details []string
}

func (res ApiError) Description() string {
	switch res.Type {
	case ApiErrorTypeBadParam:
		return "A validation error occurred"
	case ApiErrorTypeMissingParam:
		return "A required parameter is missing"
	case ApiErrorTypeAlreadyRegistered:
		return "A resource with the same id is already registered"
	case ApiErrorTypeNotFound:
		return "The requested resource does not exist"
	case ApiErrorTypeNotAcceptable:
		return "None of the accepted media types is supported"
	case ApiErrorTypeUnprocessable:
		return "The request payload is invalid"
	default:
		return "An unknown error occurred"
	}
}

func (res ApiError) MarshalJSON() ([]byte, error) {
	details := res.Details
	if details == nil {
		details = []string{}
	}
	return json.Marshal(struct {
		Type        ApiErrorType `json:"error"`
		Description string       `json:"error_description"`
		Details     []string     `json:"error_details"`
	}{
		Type:        res.Type,
		Description: res.Description(),
		Details:     details,
	})
}

func (res ApiError) Error() string {
	return fmt.Sprintf("%s: %s\n%s", res.Type, res.Description(), strings.Join(res.Details, "\n"))
}

type FailureDetails[T any] struct {
	ApiError
	Item T
}

// KLUDGE:
//
//	ApiError's Marshaler is promoted to FailureDetails through embedding, so without
//	this override the Item field would never be serialized.
func (failure FailureDetails[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Item        T            `json:"item"`
		Type        ApiErrorType `json:"error"`
		Description string       `json:"error_description"`
		Details     []string     `json:"error_details"`
	}{
		Item:        failure.Item,
		Type:        failure.Type,
		Description: failure.Description(),
		Details:     failure.Details,
	})
}

type BulkApiResponse[T any] struct {
	Success  int                 `json:"success"`
	Total    int                 `json:"total"`
	Failures []FailureDetails[T] `json:"failures"`
}
