package server

import (
	"net/http"
	"net/url"

	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/hateoas"
)

// getRoot advertises the entry points of the API to clients asking for the
// apiroot media type. Everyone else gets an empty response.
func getRoot(w http.ResponseWriter, r *http.Request) {
	if negotiate(r.Header.Get("Accept")) != MediaTypeAPIRoot {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	root := domain.URL{URL: &url.URL{Scheme: r.URL.Scheme, Host: r.URL.Host, Path: "/api"}}
	writeJSON(w, http.StatusOK, MediaTypeAPIRoot, hateoas.RootLinks(root))
}
