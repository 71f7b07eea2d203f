package payroll

import (
	"time"

	"github.com/gestionsoft/erp-backend-go/internal/domain/employee"
	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/validator"
)

// ResolvePeriod expands a "YYYY-MM" period into its first day, last day and
// calendar length.
func ResolvePeriod(period string) (start time.Time, end time.Time, daysInMonth int, err error) {
	if !validator.IsValidPeriod(period) {
		return time.Time{}, time.Time{}, 0, payroll.ErrInvalidPeriod
	}
	start, err = time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, 0, payroll.ErrInvalidPeriod
	}
	end = start.AddDate(0, 1, -1)
	return start, end, end.Day(), nil
}

// WorkedDays counts the calendar days, inclusive on both ends, where the
// employment window overlaps the period. An employee hired on the 15th of a
// 31-day month works 17 days of it. A termination date clips the window only
// once the employee is inactive; an active employee with a termination date
// on record still works through the period end.
func WorkedDays(e employee.Employee, periodStart, periodEnd time.Time) int {
	from := periodStart
	if e.HireDate.After(from) {
		from = e.HireDate
	}
	to := periodEnd
	if e.Status == employee.EmploymentStatusInactive && e.TerminationDate != nil && e.TerminationDate.Before(to) {
		to = *e.TerminationDate
	}
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
