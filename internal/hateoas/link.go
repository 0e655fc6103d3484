package hateoas

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/technopolitica/company-employees/internal/domain"
)

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

func NewLink(href domain.URL, rel string, method string) Link {
	return Link{Href: href.String(), Rel: rel, Method: method}
}

// RootLinks describes the entry points reachable from the API root.
func RootLinks(root domain.URL) []Link {
	companies := root.JoinPath("companies")
	return []Link{
		NewLink(root.WithoutQuery(), "self", http.MethodGet),
		NewLink(companies, "companies", http.MethodGet),
		NewLink(companies, "create_company", http.MethodPost),
	}
}

// marshalUnescaped encodes v without HTML escaping. An encoder that escapes
// will still escape the result, so this only keeps '&' intact for callers
// that disabled escaping.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
