package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/technopolitica/company-employees/internal/domain"
)

type CompanyView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	FullAddress string    `json:"fullAddress"`
}

func viewOfCompany(company domain.Company) CompanyView {
	return CompanyView{
		ID:          company.ID,
		Name:        company.Name,
		FullAddress: company.FullAddress(),
	}
}

func viewsOfCompanies(companies []domain.Company) []CompanyView {
	views := make([]CompanyView, 0, len(companies))
	for _, company := range companies {
		views = append(views, viewOfCompany(company))
	}
	return views
}

// parseIDList reads "(id1,id2,...)"; the parentheses are optional.
func parseIDList(raw string) (ids []uuid.UUID, errs []string) {
	raw = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(raw), "("), ")")
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			errs = append(errs, fmt.Sprintf("ids: %q is not a valid UUID", part))
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 && len(errs) == 0 {
		errs = append(errs, "ids: missing required parameter")
	}
	return
}

func locationOf(r *http.Request, elem ...string) string {
	base := domain.URL{URL: r.URL}
	location := base.JoinPath(elem...)
	return location.String()
}

func NewCompaniesRouter(env *Env) *chi.Mux {
	companiesRouter := chi.NewRouter()
	companiesRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		companies, err := env.Companies.GetAll(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MediaTypeJSON, viewsOfCompanies(companies))
	})
	companiesRouter.Options("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, OPTIONS, POST")
		w.WriteHeader(http.StatusOK)
	})
	companiesRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var payload domain.CompanyForCreation
		if !decodeJSON(w, r, &payload, "company") {
			return
		}
		company, _, err := env.Companies.Create(r.Context(), payload)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", locationOf(r, company.ID.String()))
		writeJSON(w, http.StatusCreated, MediaTypeJSON, viewOfCompany(company))
	})
	companiesRouter.Get("/collection/{ids}", func(w http.ResponseWriter, r *http.Request) {
		ids, errs := parseIDList(chi.URLParam(r, "ids"))
		if len(errs) > 0 {
			badParam(w, r, errs...)
			return
		}
		companies, err := env.Companies.GetByIDs(r.Context(), ids)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MediaTypeJSON, viewsOfCompanies(companies))
	})
	companiesRouter.Post("/collection", func(w http.ResponseWriter, r *http.Request) {
		var payloads []domain.CompanyForCreation
		if !decodeJSON(w, r, &payloads, "companies") {
			return
		}

		ctx := r.Context()
		nServerErrors := 0
		response := domain.BulkApiResponse[domain.CompanyForCreation]{
			Total:    len(payloads),
			Failures: []domain.FailureDetails[domain.CompanyForCreation]{},
		}
		var created []string
		for _, payload := range payloads {
			company, _, err := env.Companies.Create(ctx, payload)
			var validationErr *domain.ValidationError
			if err != nil && errors.As(err, &validationErr) {
				response.Failures = append(response.Failures, domain.FailureDetails[domain.CompanyForCreation]{
					Item: payload,
					ApiError: domain.ApiError{
						Type:    domain.ApiErrorTypeBadParam,
						Details: validationErr.Details,
					},
				})
				continue
			}
			if err != nil && errors.Is(err, domain.ErrConflict) {
				response.Failures = append(response.Failures, domain.FailureDetails[domain.CompanyForCreation]{
					Item: payload,
					ApiError: domain.ApiError{
						Type:    domain.ApiErrorTypeAlreadyRegistered,
						Details: []string{"A company with the same id is already registered"},
					},
				})
				continue
			}
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("failed to insert company")
				response.Failures = append(response.Failures, domain.FailureDetails[domain.CompanyForCreation]{
					Item: payload,
					ApiError: domain.ApiError{
						Type:    domain.ApiErrorTypeUnknown,
						Details: []string{"An unknown error has occurred"},
					},
				})
				nServerErrors += 1
				continue
			}
			created = append(created, company.ID.String())
			response.Success += 1
		}

		httpStatus := http.StatusCreated
		if response.Total == 0 {
			httpStatus = http.StatusBadRequest
		} else if nServerErrors == response.Total {
			httpStatus = http.StatusInternalServerError
		} else if response.Success == 0 { // at least some of the payloads were bad requests
			httpStatus = http.StatusBadRequest
		}
		if len(created) > 0 {
			w.Header().Set("Location", locationOf(r, "("+strings.Join(created, ",")+")"))
		}
		render.Status(r, httpStatus)
		render.JSON(w, r, response)
	})
	companiesRouter.Get("/{companyId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		company, err := env.Companies.Get(r.Context(), companyID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MediaTypeJSON, viewOfCompany(company))
	})
	companiesRouter.Put("/{companyId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		var payload domain.CompanyForUpdate
		if !decodeJSON(w, r, &payload, "company") {
			return
		}
		err := env.Companies.Update(r.Context(), companyID, payload)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	companiesRouter.Delete("/{companyId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		err := env.Companies.Delete(r.Context(), companyID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	companiesRouter.Mount("/{companyId}/employees", NewEmployeesRouter(env))
	return companiesRouter
}
