package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/technopolitica/company-employees/internal/memstore"
	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/service"
)

type testResponse struct {
	StatusCode int
	Header     http.Header
	Body       string
}

var _ = Describe("Server", func() {
	var apiServer *httptest.Server
	var store *memstore.Store

	BeforeEach(func(ctx context.Context) {
		store = memstore.New()
		Expect(store.Seed(ctx)).To(Succeed())
		router := New(&Env{
			Companies: service.NewCompanies(store),
			Employees: service.NewEmployees(store, store),
			Limits:    paging.DefaultLimits,
			Logger:    zerolog.New(GinkgoWriter),
		})
		apiServer = httptest.NewServer(router)
		DeferCleanup(apiServer.Close)
	})

	do := func(method string, path string, accept string, body string) testResponse {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, apiServer.URL+path, reader)
		Expect(err).NotTo(HaveOccurred())
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		res, err := apiServer.Client().Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		Expect(err).NotTo(HaveOccurred())
		return testResponse{StatusCode: res.StatusCode, Header: res.Header, Body: string(data)}
	}

	employeesPath := fmt.Sprintf("/api/companies/%s/employees", memstore.ITSolutionsID)

	Describe("GET /api/companies/{companyId}/employees", func() {
		It("returns plain JSON with pagination metadata in a header", func() {
			res := do(http.MethodGet, employeesPath+"?pageSize=1&fields=name", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Header.Get("Content-Type")).To(Equal(MediaTypeJSON))
			Expect(res.Header.Get("X-Pagination")).To(MatchJSON(`{
				"currentPage": 1,
				"totalPages": 2,
				"pageSize": 1,
				"totalCount": 2,
				"hasPrevious": false,
				"hasNext": true
			}`))
			Expect(res.Body).To(MatchJSON(`[
				{"id": "86dba8c0-d178-41e7-938c-ed49778fb52a", "name": "Jana McLeaf"}
			]`))
		})

		It("returns links for the hateoas media type", func() {
			res := do(http.MethodGet, employeesPath+"?pageSize=1&orderBy=age", MediaTypeHateoas, "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Header.Get("Content-Type")).To(Equal(MediaTypeHateoas))

			base := apiServer.URL + employeesPath
			self := base + "/80abbca8-664d-4b20-b5de-024705497d4a"
			Expect(res.Body).To(MatchJSON(`{
				"value": [
					{
						"id": "80abbca8-664d-4b20-b5de-024705497d4a",
						"name": "Sam Raiden",
						"age": 26,
						"position": "Software developer",
						"links": [
							{"href": "` + self + `", "rel": "self", "method": "GET"},
							{"href": "` + self + `", "rel": "delete_employee", "method": "DELETE"},
							{"href": "` + self + `", "rel": "update_employee", "method": "PUT"}
						]
					}
				],
				"links": [
					{"href": "` + base + `?pageSize=1&orderBy=age", "rel": "self", "method": "GET"},
					{"href": "` + base + `", "rel": "create_employee", "method": "POST"},
					{"href": "` + base + `?orderBy=age&pageNumber=2&pageSize=1", "rel": "next_page", "method": "GET"}
				]
			}`))
			Expect(res.Body).NotTo(ContainSubstring(`\u0026`))
		})

		It("treats a wildcard Accept as plain JSON", func() {
			res := do(http.MethodGet, employeesPath, "*/*", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).NotTo(ContainSubstring(`"links"`))
		})

		It("requires an Accept header", func() {
			res := do(http.MethodGet, employeesPath, "", "")
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(res.Body).To(MatchJSON(`{
				"error": "missing_param",
				"error_description": "A required parameter is missing",
				"error_details": ["Accept: header is missing"]
			}`))
		})

		It("rejects unsupported media types", func() {
			res := do(http.MethodGet, employeesPath, "text/csv", "")
			Expect(res.StatusCode).To(Equal(http.StatusNotAcceptable))
		})

		It("rejects malformed paging parameters", func() {
			res := do(http.MethodGet, employeesPath+"?pageNumber=0&pageSize=abc", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(res.Body).To(MatchJSON(`{
				"error": "bad_param",
				"error_description": "A validation error occurred",
				"error_details": [
					"pageNumber: must be a positive integer",
					"pageSize: must be a positive integer"
				]
			}`))
		})

		It("rejects an inverted age range", func() {
			res := do(http.MethodGet, employeesPath+"?minAge=50&maxAge=20", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(res.Body).To(ContainSubstring("max age can't be less than min age"))
		})

		It("returns 404 for an unknown company", func() {
			res := do(http.MethodGet, "/api/companies/7b4b0d4c-0f0a-4c1a-9d7e-4c1d5a0e9f11/employees", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
			Expect(res.Body).To(ContainSubstring("company not found"))
		})

		It("returns 400 for a malformed company id", func() {
			res := do(http.MethodGet, "/api/companies/not-a-uuid/employees", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("employee resources", func() {
		It("creates, fetches, updates and deletes an employee", func() {
			res := do(http.MethodPost, employeesPath, "", `{"name": "Mike Reyn", "age": 41, "position": "Administrator"}`)
			Expect(res.StatusCode).To(Equal(http.StatusCreated))
			location := res.Header.Get("Location")
			Expect(location).To(HavePrefix(apiServer.URL + employeesPath + "/"))

			var created struct {
				ID string `json:"id"`
			}
			Expect(json.Unmarshal([]byte(res.Body), &created)).To(Succeed())
			path := employeesPath + "/" + created.ID

			res = do(http.MethodGet, path+"?fields=age", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(MatchJSON(`{"id": "` + created.ID + `", "age": 41}`))

			res = do(http.MethodPut, path, "", `{"name": "Mike Reyn", "age": 42, "position": "Administrator"}`)
			Expect(res.StatusCode).To(Equal(http.StatusNoContent))

			res = do(http.MethodDelete, path, "", "")
			Expect(res.StatusCode).To(Equal(http.StatusNoContent))

			res = do(http.MethodGet, path, "", "")
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("rejects invalid employees with 422", func() {
			res := do(http.MethodPost, employeesPath, "", `{"name": "", "age": 12, "position": "Intern"}`)
			Expect(res.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(res.Body).To(ContainSubstring("name: is required"))
			Expect(res.Body).To(ContainSubstring("age: must be at least 18"))
		})

		It("rejects malformed JSON with 400", func() {
			res := do(http.MethodPost, employeesPath, "", `{"name": `)
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		})

		Describe("PATCH", func() {
			samPath := employeesPath + "/80abbca8-664d-4b20-b5de-024705497d4a"

			It("applies a JSON Patch document", func() {
				res := do(http.MethodPatch, samPath, "", `[{"op": "replace", "path": "/position", "value": "Team lead"}]`)
				Expect(res.StatusCode).To(Equal(http.StatusNoContent))

				res = do(http.MethodGet, samPath, "", "")
				Expect(res.Body).To(MatchJSON(`{
					"id": "80abbca8-664d-4b20-b5de-024705497d4a",
					"name": "Sam Raiden",
					"age": 26,
					"position": "Team lead"
				}`))
			})

			It("answers 422 when the patched employee is invalid", func() {
				res := do(http.MethodPatch, samPath, "", `[{"op": "remove", "path": "/name"}]`)
				Expect(res.StatusCode).To(Equal(http.StatusUnprocessableEntity))
				Expect(res.Body).To(ContainSubstring("name: is required"))
			})

			It("answers 400 for a document that is not a patch", func() {
				res := do(http.MethodPatch, samPath, "", `{"op": "replace", "path": "/age", "value": 30}`)
				Expect(res.StatusCode).To(Equal(http.StatusBadRequest))

				res = do(http.MethodPatch, samPath, "", "")
				Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			})

			It("answers 404 for an unknown employee", func() {
				res := do(http.MethodPatch, employeesPath+"/"+uuid.NewString(), "", `[]`)
				Expect(res.StatusCode).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("companies", func() {
		It("lists companies with their full address", func() {
			res := do(http.MethodGet, "/api/companies", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(MatchJSON(fmt.Sprintf(`[
				{"id": "%s", "name": "Admin_Solutions Ltd", "fullAddress": "312 Forest Avenue, BF 923 USA"},
				{"id": "%s", "name": "IT_Solutions Ltd", "fullAddress": "583 Wall Dr. Gwynn Oak, MD 21207 USA"}
			]`, memstore.AdminSolutionsID, memstore.ITSolutionsID)))
		})

		It("fetches a collection by ids", func() {
			res := do(http.MethodGet, fmt.Sprintf("/api/companies/collection/(%s,%s)", memstore.ITSolutionsID, memstore.AdminSolutionsID), "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			var companies []CompanyView
			Expect(json.Unmarshal([]byte(res.Body), &companies)).To(Succeed())
			Expect(companies).To(HaveLen(2))
		})

		It("rejects a malformed id collection", func() {
			res := do(http.MethodGet, "/api/companies/collection/(nope)", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("creates companies in bulk", func() {
			res := do(http.MethodPost, "/api/companies/collection", "", `[
				{"name": "Electronics Solutions Ltd", "address": "312 Deviever Avenue, RF 293", "country": "USA"},
				{"name": "", "address": "nowhere"}
			]`)
			Expect(res.StatusCode).To(Equal(http.StatusCreated))
			Expect(res.Header.Get("Location")).To(HavePrefix(apiServer.URL + "/api/companies/collection/"))

			var bulk struct {
				Success  int               `json:"success"`
				Total    int               `json:"total"`
				Failures []json.RawMessage `json:"failures"`
			}
			Expect(json.Unmarshal([]byte(res.Body), &bulk)).To(Succeed())
			Expect(bulk.Success).To(Equal(1))
			Expect(bulk.Total).To(Equal(2))
			Expect(bulk.Failures).To(HaveLen(1))
			Expect(string(bulk.Failures[0])).To(ContainSubstring("name: is required"))
		})

		It("creates a company with employees", func() {
			res := do(http.MethodPost, "/api/companies", "", `{
				"name": "Electronics Solutions Ltd",
				"address": "312 Deviever Avenue, RF 293",
				"country": "USA",
				"employees": [{"name": "Joan Dane", "age": 29, "position": "Manager"}]
			}`)
			Expect(res.StatusCode).To(Equal(http.StatusCreated))
			var created CompanyView
			Expect(json.Unmarshal([]byte(res.Body), &created)).To(Succeed())

			res = do(http.MethodGet, fmt.Sprintf("/api/companies/%s/employees", created.ID), MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(ContainSubstring("Joan Dane"))
		})

		It("updates and deletes a company", func() {
			path := fmt.Sprintf("/api/companies/%s", memstore.AdminSolutionsID)
			res := do(http.MethodPut, path, "", `{"name": "Admin_Solutions Ltd", "address": "1 New Street", "country": "USA"}`)
			Expect(res.StatusCode).To(Equal(http.StatusNoContent))

			res = do(http.MethodGet, path, "", "")
			Expect(res.Body).To(ContainSubstring("1 New Street USA"))

			res = do(http.MethodDelete, path, "", "")
			Expect(res.StatusCode).To(Equal(http.StatusNoContent))

			res = do(http.MethodGet, path, "", "")
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("advertises the allowed methods", func() {
			res := do(http.MethodOptions, "/api/companies", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Header.Get("Allow")).To(Equal("GET, OPTIONS, POST"))
		})
	})

	Describe("GET /api", func() {
		It("returns the root links for the apiroot media type", func() {
			res := do(http.MethodGet, "/api", MediaTypeAPIRoot, "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(MatchJSON(`[
				{"href": "` + apiServer.URL + `/api", "rel": "self", "method": "GET"},
				{"href": "` + apiServer.URL + `/api/companies", "rel": "companies", "method": "GET"},
				{"href": "` + apiServer.URL + `/api/companies", "rel": "create_company", "method": "POST"}
			]`))
		})

		It("returns no content otherwise", func() {
			res := do(http.MethodGet, "/api", MediaTypeJSON, "")
			Expect(res.StatusCode).To(Equal(http.StatusNoContent))
		})
	})

	Describe("operational endpoints", func() {
		It("answers health checks", func() {
			res := do(http.MethodGet, "/health", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})

		It("exposes request metrics", func() {
			do(http.MethodGet, employeesPath, MediaTypeHateoas, "")
			res := do(http.MethodGet, "/metrics", "", "")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Body).To(ContainSubstring(`company_employees_http_requests_total{code="200",method="GET",route="/api/companies/{companyId}/employees`))
			Expect(res.Body).To(ContainSubstring(`company_employees_employee_page_items_count{representation="hypermedia"} 1`))
		})
	})
})
