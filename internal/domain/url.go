package domain

import (
	"encoding/json"
	"net/url"
)

type URL struct {
	*url.URL
}

func (u URL) MarshalJSON() (text []byte, err error) {
	return json.Marshal(u.String())
}

func (u *URL) UnmarshalJSON(text []byte) (err error) {
	var raw string
	err = json.Unmarshal(text, &raw)
	if err != nil {
		return
	}
	*u, err = ParseURL(raw)
	return
}

func (u *URL) String() string {
	if u.URL == nil {
		return ""
	}
	return u.URL.String()
}

func (u *URL) ModifyQuery(mod func(query *url.Values)) URL {
	newURL := u.Clone()
	query := newURL.Query()
	mod(&query)
	newURL.RawQuery = query.Encode()
	return newURL
}

// JoinPath returns a copy of u with elem appended to its path. The query is dropped.
func (u *URL) JoinPath(elem ...string) URL {
	newURL := u.WithoutQuery()
	return URL{newURL.URL.JoinPath(elem...)}
}

func (u *URL) WithoutQuery() URL {
	newURL := u.Clone()
	newURL.RawQuery = ""
	newURL.ForceQuery = false
	return newURL
}

func (u *URL) Clone() URL {
	if u.URL == nil {
		return URL{&url.URL{}}
	}
	inner := *u.URL
	return URL{&inner}
}

func ParseURL(text string) (u URL, err error) {
	p, err := url.Parse(text)
	u = URL{p}
	return
}
