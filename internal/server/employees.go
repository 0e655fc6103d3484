package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/service"
)

func NewEmployeesRouter(env *Env) *chi.Mux {
	employeesRouter := chi.NewRouter()
	employeesRouter.With(requireMediaType).Get("/", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		params, err := domain.ParseEmployeeParameters(r.URL.Query(), env.Limits)
		if err != nil {
			writeError(w, r, err)
			return
		}

		mediaType := GetMediaType(r)
		capability := capabilityOf(mediaType)
		response, meta, err := env.Employees.ListEmployees(r.Context(), companyID, params, service.LinkParameters{
			Capability: capability,
			Collection: domain.URL{URL: r.URL},
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		env.Metrics.ObserveEmployeePage(capability.String(), response.Len())
		w.Header().Set(paginationHeader, meta.Header())
		writeJSON(w, http.StatusOK, mediaType, response.Body())
	})
	employeesRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		var payload domain.EmployeeForCreation
		if !decodeJSON(w, r, &payload, "employee") {
			return
		}
		employee, err := env.Employees.CreateEmployee(r.Context(), companyID, payload)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", locationOf(r, employee.ID.String()))
		writeJSON(w, http.StatusCreated, MediaTypeJSON, employee)
	})
	employeesRouter.Get("/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		employeeID, ok := urlParamUUID(w, r, "employeeId")
		if !ok {
			return
		}
		fields := domain.ParseFieldSet(paging.NewParser(r.URL.Query()).String("fields", ""))
		entity, err := env.Employees.GetEmployee(r.Context(), companyID, employeeID, fields)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MediaTypeJSON, entity)
	})
	employeesRouter.Put("/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		employeeID, ok := urlParamUUID(w, r, "employeeId")
		if !ok {
			return
		}
		var payload domain.EmployeeForUpdate
		if !decodeJSON(w, r, &payload, "employee") {
			return
		}
		err := env.Employees.UpdateEmployee(r.Context(), companyID, employeeID, payload)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	employeesRouter.Patch("/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		employeeID, ok := urlParamUUID(w, r, "employeeId")
		if !ok {
			return
		}
		patch, ok := decodePatch(w, r)
		if !ok {
			return
		}
		err := env.Employees.PatchEmployee(r.Context(), companyID, employeeID, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	employeesRouter.Delete("/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
		companyID, ok := urlParamUUID(w, r, "companyId")
		if !ok {
			return
		}
		employeeID, ok := urlParamUUID(w, r, "employeeId")
		if !ok {
			return
		}
		err := env.Employees.DeleteEmployee(r.Context(), companyID, employeeID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return employeesRouter
}
