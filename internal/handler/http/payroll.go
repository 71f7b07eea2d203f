package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/gestionsoft/erp-backend-go/internal/handler/http/response"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// payrollID pulls the {id} route parameter and rejects anything that is not a
// UUID before it reaches the database.
func payrollID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid payroll id", nil)
		return "", false
	}
	return id, true
}

type PayrollHandler interface {
	// Records
	Calculate(w http.ResponseWriter, r *http.Request)
	GetByPeriod(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	Annul(w http.ResponseWriter, r *http.Request)

	// Config
	GetConfig(w http.ResponseWriter, r *http.Request)
	GetConfigHistory(w http.ResponseWriter, r *http.Request)
	UpsertConfig(w http.ResponseWriter, r *http.Request)

	// Variables
	ListVariables(w http.ResponseWriter, r *http.Request)
	UpsertVariable(w http.ResponseWriter, r *http.Request)
	DeleteVariable(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll calculated successfully", result)
}

func (h *payrollHandlerImpl) GetByPeriod(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	result, err := h.payrollService.GetByPeriod(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := payrollID(w, r)
	if !ok {
		return
	}

	var req payroll.MarkPaidRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.payrollService.MarkPaid(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", result)
}

func (h *payrollHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	id, ok := payrollID(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Reopen(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll reopened", result)
}

func (h *payrollHandlerImpl) Annul(w http.ResponseWriter, r *http.Request) {
	id, ok := payrollID(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Annul(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll annulled", result)
}

// ========== CONFIG ==========

func (h *payrollHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ResolveConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetConfigHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListConfigHistory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll configuration saved", result)
}

// ========== VARIABLES ==========

func (h *payrollHandlerImpl) ListVariables(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.payrollService.ListVariables(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertVariable(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertVariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertVariable(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll variable saved", result)
}

func (h *payrollHandlerImpl) DeleteVariable(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.payrollService.DeleteVariable(r.Context(), key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll variable deleted", nil)
}
