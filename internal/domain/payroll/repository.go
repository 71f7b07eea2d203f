package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll configuration versions,
// period records and variables. Every method is scoped by companyID to keep
// tenants from reading each other's data; an empty companyID addresses the
// global (unscoped) configuration.
type PayrollRepository interface {
	// Config versions (append-only)
	CreateConfig(ctx context.Context, cfg Config) (Config, error)
	// GetConfigForDate returns the version with the latest effective date
	// that is not after the given date, or ErrConfigNotFound.
	GetConfigForDate(ctx context.Context, companyID string, date time.Time) (Config, error)
	ListConfigs(ctx context.Context, companyID string) ([]Config, error)

	// Period records, unique per (period, company)
	GetPeriodByID(ctx context.Context, id string, companyID string) (Period, error)
	GetPeriodByPeriod(ctx context.Context, period string, companyID string) (Period, error)
	InsertPeriod(ctx context.Context, p Period) (Period, error)
	// ReplacePeriod overwrites the breakdown, totals, applied config and
	// calculation timestamp of an existing record and resets it to
	// calculated. Callers must refuse paid records before replacing.
	ReplacePeriod(ctx context.Context, p Period) (Period, error)
	UpdatePeriodStatus(ctx context.Context, id string, companyID string, status PeriodStatus, paidAt *time.Time) error

	// Variables
	UpsertVariable(ctx context.Context, v Variable) (Variable, error)
	ListVariables(ctx context.Context, companyID string, activeOnly bool) ([]Variable, error)
	DeleteVariableByKey(ctx context.Context, key string, companyID string) error
}
