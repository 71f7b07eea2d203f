package response

import (
	"errors"
	"net/http"

	"github.com/gestionsoft/erp-backend-go/internal/domain/employee"
	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Period must be in YYYY-MM format", nil)
	case errors.Is(err, payroll.ErrPayrollPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrConfigNotFound):
		NotFound(w, "Payroll configuration not found")
	case errors.Is(err, payroll.ErrNoEligibleEmployees):
		NotFound(w, "No eligible employees for the requested period")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll period already marked as paid")
	case errors.Is(err, payroll.ErrPayrollAnnulled):
		Conflict(w, "Payroll period has been annulled")
	case errors.Is(err, payroll.ErrPayrollNotPaid):
		Conflict(w, "Payroll period is not in paid state")
	case errors.Is(err, payroll.ErrVariableNotFound):
		NotFound(w, "Payroll variable not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
