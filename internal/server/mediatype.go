package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/munnerz/goautoneg"
	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/hateoas"
)

const (
	MediaTypeJSON     = "application/json"
	MediaTypeHateoas  = "application/vnd.codemaze.hateoas+json"
	MediaTypeAPIRoot  = "application/vnd.codemaze.apiroot+json"
	paginationHeader  = "X-Pagination"
	contentTypeHeader = "Content-Type"
)

var supportedMediaTypes = []string{MediaTypeJSON, MediaTypeHateoas, MediaTypeAPIRoot}

type contextKey int

const contextKeyMediaType contextKey = iota

// negotiate picks the best supported media type for the Accept header, or
// "" when none is acceptable.
func negotiate(accept string) string {
	return goautoneg.Negotiate(accept, supportedMediaTypes)
}

// requireMediaType rejects requests without an Accept header or with one that
// matches no supported media type. The negotiated type is stored on the
// request context.
func requireMediaType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := strings.TrimSpace(r.Header.Get("Accept"))
		if accept == "" {
			writeApiError(w, r, http.StatusBadRequest, domain.ApiError{
				Type:    domain.ApiErrorTypeMissingParam,
				Details: []string{"Accept: header is missing"},
			})
			return
		}
		mediaType := negotiate(accept)
		if mediaType == "" {
			writeApiError(w, r, http.StatusNotAcceptable, domain.ApiError{
				Type:    domain.ApiErrorTypeNotAcceptable,
				Details: []string{"Accept: supported media types are " + strings.Join(supportedMediaTypes, ", ")},
			})
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyMediaType, mediaType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetMediaType(r *http.Request) string {
	mediaType, ok := r.Context().Value(contextKeyMediaType).(string)
	if !ok {
		return MediaTypeJSON
	}
	return mediaType
}

func capabilityOf(mediaType string) hateoas.Capability {
	if strings.Contains(mediaType, "hateoas") {
		return hateoas.CapabilityHypermedia
	}
	return hateoas.CapabilityPlain
}
