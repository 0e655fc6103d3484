package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/service"
)

// writeJSON encodes body without HTML escaping.
//
// FIXME: we can't use render.JSON for bodies containing URLs because the default
// json.Marshal implementation escapes HTML characters (including the ampersand '&'),
// which breaks the rendering of query strings in links.
func writeJSON(w http.ResponseWriter, status int, contentType string, body any) {
	w.Header().Set(contentTypeHeader, contentType)
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(body)
	if err != nil {
		panic(err)
	}
}

func writeApiError(w http.ResponseWriter, r *http.Request, status int, apiErr domain.ApiError) {
	render.Status(r, status)
	render.JSON(w, r, apiErr)
}

func badParam(w http.ResponseWriter, r *http.Request, details ...string) {
	writeApiError(w, r, http.StatusBadRequest, domain.ApiError{
		Type:    domain.ApiErrorTypeBadParam,
		Details: details,
	})
}

// writeError maps a service error onto its HTTP representation.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErrs paging.ParameterErrors
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &paramErrs):
		badParam(w, r, paramErrs.Details()...)
	case errors.As(err, &validationErr):
		writeApiError(w, r, http.StatusUnprocessableEntity, domain.ApiError{
			Type:    domain.ApiErrorTypeUnprocessable,
			Details: validationErr.Details,
		})
	case errors.Is(err, service.ErrCompanyNotFound), errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, domain.ErrNotFound):
		writeApiError(w, r, http.StatusNotFound, domain.ApiError{
			Type:    domain.ApiErrorTypeNotFound,
			Details: []string{notFoundDetail(err)},
		})
	case errors.Is(err, domain.ErrConflict):
		writeApiError(w, r, http.StatusConflict, domain.ApiError{
			Type:    domain.ApiErrorTypeAlreadyRegistered,
			Details: []string{},
		})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeApiError(w, r, http.StatusInternalServerError, domain.ApiError{
			Type:    domain.ApiErrorTypeUnknown,
			Details: []string{"An unknown error has occurred"},
		})
	}
}

func notFoundDetail(err error) string {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		return service.ErrCompanyNotFound.Error()
	case errors.Is(err, service.ErrEmployeeNotFound):
		return service.ErrEmployeeNotFound.Error()
	default:
		return domain.ErrNotFound.Error()
	}
}

func urlParamUUID(w http.ResponseWriter, r *http.Request, name string) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badParam(w, r, name+": must be a valid UUID")
		return
	}
	ok = true
	return
}

// decodeJSON reads the request body into v, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, what string) bool {
	defer r.Body.Close()
	err := render.DecodeJSON(r.Body, v)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msgf("malformed %s payload", what)
		badParam(w, r, what+" payload is not valid JSON")
		return false
	}
	return true
}

// decodePatch reads a JSON Patch document, answering 400 itself when the body
// is missing or is not a patch.
func decodePatch(w http.ResponseWriter, r *http.Request) (jsonpatch.Patch, bool) {
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		badParam(w, r, "failed to read patch document")
		return nil, false
	}
	patch, err := jsonpatch.DecodePatch(data)
	if err != nil || patch == nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("malformed patch document")
		badParam(w, r, "patch document must be a JSON array of operations")
		return nil, false
	}
	return patch, true
}
