package payroll

import "context"

type PayrollService interface {
	// CalculateForPeriod runs the full payroll calculation for every eligible
	// employee in the period and persists the result (companyID from JWT).
	// Recalculating an existing record replaces it unless it is already paid.
	CalculateForPeriod(ctx context.Context, req CalculatePayrollRequest) (CalculatePayrollResponse, error)

	// GetByPeriod returns the stored record for a period, or an empty
	// calculated-shaped response when no record exists yet.
	GetByPeriod(ctx context.Context, period string) (PeriodResponse, error)

	// MarkPaid transitions a calculated record to paid
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (PeriodResponse, error)

	// Reopen transitions a paid record back to calculated so it can be
	// corrected and recalculated
	Reopen(ctx context.Context, id string) (PeriodResponse, error)

	// Annul voids a record without deleting it
	Annul(ctx context.Context, id string) (PeriodResponse, error)

	// ResolveConfig returns the configuration in force today, falling back to
	// the legal defaults when the tenant has no stored version
	ResolveConfig(ctx context.Context) (ConfigResponse, error)

	// UpsertConfig inserts a new configuration version (append-only)
	UpsertConfig(ctx context.Context, req UpsertConfigRequest) (ConfigResponse, error)

	// ListConfigHistory returns every stored version, newest first
	ListConfigHistory(ctx context.Context) ([]ConfigResponse, error)

	// Variables CRUD (keyed per company)
	UpsertVariable(ctx context.Context, req UpsertVariableRequest) (VariableResponse, error)
	ListVariables(ctx context.Context, activeOnly bool) ([]VariableResponse, error)
	DeleteVariable(ctx context.Context, key string) error
}
