package payroll

import "errors"

var (
	ErrInvalidPeriod         = errors.New("period must be in YYYY-MM format")
	ErrConfigNotFound        = errors.New("payroll configuration not found")
	ErrPayrollPeriodNotFound = errors.New("payroll period not found")
	ErrNoEligibleEmployees   = errors.New("no eligible employees for the requested period")
	ErrPayrollAlreadyPaid    = errors.New("payroll period already marked as paid")
	ErrPayrollAnnulled       = errors.New("payroll period has been annulled")
	ErrPayrollNotPaid        = errors.New("payroll period is not in paid state")
	ErrVariableNotFound      = errors.New("payroll variable not found")
)
