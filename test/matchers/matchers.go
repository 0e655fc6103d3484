package matchers

import (
	"encoding/json"
	"fmt"

	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	. "github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// Link mirrors the hypermedia link objects the API emits.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

func parseJSONObject(actual any) (object map[string]any, err error) {
	data, ok := actual.([]byte)
	if !ok {
		err = fmt.Errorf("MatchJSONObject matcher actual value must be of type []byte. Got:\n%s", format.Object(actual, 1))
		return
	}
	err = json.Unmarshal(data, &object)
	if err != nil {
		err = fmt.Errorf("MatchJSONObject failed to parse JSON object from actual value: %w", err)
	}
	return
}

func toJSON(actual any) ([]byte, error) {
	switch a := actual.(type) {
	case []byte:
		return a, nil
	case string:
		return []byte(a), nil
	default:
		return json.Marshal(a)
	}
}

// MatchJSONObject decodes a JSON object and hands it to matchWith, or
// compares it structurally when matchWith is a plain value.
func MatchJSONObject(matchWith any) types.GomegaMatcher {
	if matcher, ok := matchWith.(types.GomegaMatcher); ok {
		return WithTransform(parseJSONObject, matcher)
	}
	expected, err := json.Marshal(matchWith)
	if err != nil {
		panic(err)
	}
	return WithTransform(toJSON, MatchJSON(expected))
}

// ParseLinks converts a decoded "links" array back into Links.
func ParseLinks(raw any) (links []Link, err error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &links)
	return
}

// HaveLink succeeds when a links array contains rel with the given method
// and an href satisfying href.
func HaveLink(rel string, method string, href types.GomegaMatcher) types.GomegaMatcher {
	return WithTransform(ParseLinks, ContainElement(MatchFields(IgnoreExtras, Fields{
		"Rel":    Equal(rel),
		"Method": Equal(method),
		"Href":   href,
	})))
}

// FindLink returns the href of the first link with rel, or "".
func FindLink(links []Link, rel string) string {
	for _, link := range links {
		if link.Rel == rel {
			return link.Href
		}
	}
	return ""
}
