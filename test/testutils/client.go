package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
)

type TestClient struct {
	baseURL url.URL
	client  *http.Client
}

func NewTestClient(baseURL url.URL) *TestClient {
	return &TestClient{baseURL: baseURL, client: &http.Client{}}
}

func (c *TestClient) URL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *TestClient) Do(method string, target string, accept string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	Expect(err).NotTo(HaveOccurred())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.client.Do(req)
	Expect(err).NotTo(HaveOccurred())
	return res
}

func (c *TestClient) Get(target string, accept string) *http.Response {
	return c.Do(http.MethodGet, target, accept, nil)
}

func (c *TestClient) ListEmployees(companyID uuid.UUID, query url.Values, accept string) *http.Response {
	return c.Get(c.URL(fmt.Sprintf("api/companies/%s/employees", companyID), query), accept)
}

func (c *TestClient) CreateCompany(payload any) *http.Response {
	return c.Do(http.MethodPost, c.URL("api/companies", nil), "", payload)
}

func (c *TestClient) DeleteCompany(companyID uuid.UUID) *http.Response {
	return c.Do(http.MethodDelete, c.URL(fmt.Sprintf("api/companies/%s", companyID), nil), "", nil)
}

func ReadJSONBody[T any](res *http.Response) (output T) {
	data, err := io.ReadAll(res.Body)
	Expect(err).NotTo(HaveOccurred())
	defer res.Body.Close()
	err = json.Unmarshal(data, &output)
	Expect(err).NotTo(HaveOccurred())
	return
}
