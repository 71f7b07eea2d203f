package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the read-only view of the employee directory the
// payroll core depends on. Employee CRUD lives in the HR module and is not
// part of this service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	// GetEligibleForPeriod returns every employee whose employment span
	// overlaps [periodStart, periodEnd]: hired on or before the period end
	// and either still employed or terminated on/after the period start.
	GetEligibleForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]Employee, error)
}
