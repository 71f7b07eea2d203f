package employee

import "context"

type EmployeeService interface {
	// ListEligible returns the employees whose employment overlaps the given
	// period (companyID from JWT)
	ListEligible(ctx context.Context, period string) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}
