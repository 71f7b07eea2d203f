package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// nilIfEmpty maps the empty (global) company scope to SQL NULL.
func nilIfEmpty(companyID string) *string {
	if companyID == "" {
		return nil
	}
	return &companyID
}

// ========== CONFIG VERSIONS ==========

const configColumns = `
	id, company_id, effective_year, minimum_wage, transport_subsidy,
	subsidy_cap_multiple, effective_from, created_at, updated_at
`

func scanConfig(row pgx.Row) (payroll.Config, error) {
	var c payroll.Config
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EffectiveYear, &c.MinimumWage, &c.TransportSubsidy,
		&c.SubsidyCapMultiple, &c.EffectiveFrom, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payrollRepository) CreateConfig(ctx context.Context, cfg payroll.Config) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_configs (
			id, company_id, effective_year, minimum_wage, transport_subsidy,
			subsidy_cap_multiple, effective_from
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + configColumns + `
	`

	created, err := scanConfig(q.QueryRow(ctx, query,
		uuid.NewString(), cfg.CompanyID, cfg.EffectiveYear, cfg.MinimumWage,
		cfg.TransportSubsidy, cfg.SubsidyCapMultiple, cfg.EffectiveFrom,
	))
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to create payroll config: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetConfigForDate(ctx context.Context, companyID string, date time.Time) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	// Prefer the company-scoped version; fall back to the global one. Among
	// versions in force, the one with the latest effective date wins.
	query := `
		SELECT ` + configColumns + `
		FROM payroll_configs
		WHERE (company_id = $1 OR company_id IS NULL)
		  AND effective_from <= $2
		ORDER BY (company_id IS NOT NULL) DESC, effective_from DESC, created_at DESC
		LIMIT 1
	`

	c, err := scanConfig(q.QueryRow(ctx, query, nilIfEmpty(companyID), date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Config{}, payroll.ErrConfigNotFound
		}
		return payroll.Config{}, fmt.Errorf("failed to get payroll config: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) ListConfigs(ctx context.Context, companyID string) ([]payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + configColumns + `
		FROM payroll_configs
		WHERE company_id = $1 OR company_id IS NULL
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, nilIfEmpty(companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll configs: %w", err)
	}
	defer rows.Close()

	var configs []payroll.Config
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll configs: %w", err)
	}

	return configs, nil
}

// ========== PERIOD RECORDS ==========

const periodColumns = `
	id, company_id, period, employees, total_net_pay, total_employer_cost,
	total_social_security, total_parafiscals, total_provisions, applied_config,
	status, calculated_at, paid_at, created_at, updated_at
`

func scanPeriod(row pgx.Row) (payroll.Period, error) {
	var p payroll.Period
	var employeesJSON, configJSON []byte

	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Period, &employeesJSON, &p.TotalNetPay, &p.TotalEmployerCost,
		&p.TotalSocialSecurity, &p.TotalParafiscals, &p.TotalProvisions, &configJSON,
		&p.Status, &p.CalculatedAt, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payroll.Period{}, err
	}

	if err := json.Unmarshal(employeesJSON, &p.Employees); err != nil {
		return payroll.Period{}, fmt.Errorf("failed to unmarshal employee breakdown: %w", err)
	}
	if err := json.Unmarshal(configJSON, &p.AppliedConfig); err != nil {
		return payroll.Period{}, fmt.Errorf("failed to unmarshal applied config: %w", err)
	}

	return p, nil
}

func marshalPeriod(p payroll.Period) (employeesJSON, configJSON []byte, err error) {
	employeesJSON, err = json.Marshal(p.Employees)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal employee breakdown: %w", err)
	}
	configJSON, err = json.Marshal(p.AppliedConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal applied config: %w", err)
	}
	return employeesJSON, configJSON, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string, companyID string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1 AND company_id = $2
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPayrollPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByPeriod(ctx context.Context, period string, companyID string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE period = $1 AND company_id = $2
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, period, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPayrollPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) InsertPeriod(ctx context.Context, p payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	employeesJSON, configJSON, err := marshalPeriod(p)
	if err != nil {
		return payroll.Period{}, err
	}

	query := `
		INSERT INTO payroll_periods (
			id, company_id, period, employees, total_net_pay, total_employer_cost,
			total_social_security, total_parafiscals, total_provisions,
			applied_config, status, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + periodColumns + `
	`

	saved, err := scanPeriod(q.QueryRow(ctx, query,
		uuid.NewString(), p.CompanyID, p.Period, employeesJSON,
		p.TotalNetPay, p.TotalEmployerCost, p.TotalSocialSecurity,
		p.TotalParafiscals, p.TotalProvisions,
		configJSON, p.Status, p.CalculatedAt,
	))
	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to insert payroll period: %w", err)
	}

	return saved, nil
}

func (r *payrollRepository) ReplacePeriod(ctx context.Context, p payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	employeesJSON, configJSON, err := marshalPeriod(p)
	if err != nil {
		return payroll.Period{}, err
	}

	query := `
		UPDATE payroll_periods SET
			employees = $3,
			total_net_pay = $4,
			total_employer_cost = $5,
			total_social_security = $6,
			total_parafiscals = $7,
			total_provisions = $8,
			applied_config = $9,
			status = 'calculated',
			calculated_at = $10,
			paid_at = NULL,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + periodColumns + `
	`

	saved, err := scanPeriod(q.QueryRow(ctx, query,
		p.ID, p.CompanyID, employeesJSON,
		p.TotalNetPay, p.TotalEmployerCost, p.TotalSocialSecurity,
		p.TotalParafiscals, p.TotalProvisions,
		configJSON, p.CalculatedAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPayrollPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to replace payroll period: %w", err)
	}

	return saved, nil
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, companyID string, status payroll.PeriodStatus, paidAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $3, paid_at = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID, status, paidAt)
	if err != nil {
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollPeriodNotFound
	}

	return nil
}

// ========== VARIABLES ==========

const variableColumns = `
	id, company_id, name, key, type, number_value, text_value, bool_value,
	description, effective_year, start_date, end_date, active, created_at, updated_at
`

func scanVariable(row pgx.Row) (payroll.Variable, error) {
	var v payroll.Variable
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.Name, &v.Key, &v.Type, &v.NumberValue, &v.TextValue, &v.BoolValue,
		&v.Description, &v.EffectiveYear, &v.StartDate, &v.EndDate, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (r *payrollRepository) UpsertVariable(ctx context.Context, v payroll.Variable) (payroll.Variable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_variables (
			id, company_id, name, key, type, number_value, text_value, bool_value,
			description, effective_year, start_date, end_date, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, key) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			number_value = EXCLUDED.number_value,
			text_value = EXCLUDED.text_value,
			bool_value = EXCLUDED.bool_value,
			description = EXCLUDED.description,
			effective_year = EXCLUDED.effective_year,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING ` + variableColumns + `
	`

	saved, err := scanVariable(q.QueryRow(ctx, query,
		uuid.NewString(), v.CompanyID, v.Name, v.Key, v.Type,
		v.NumberValue, v.TextValue, v.BoolValue,
		v.Description, v.EffectiveYear, v.StartDate, v.EndDate, v.Active,
	))
	if err != nil {
		return payroll.Variable{}, fmt.Errorf("failed to upsert payroll variable: %w", err)
	}

	return saved, nil
}

func (r *payrollRepository) ListVariables(ctx context.Context, companyID string, activeOnly bool) ([]payroll.Variable, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + variableColumns + `
		FROM payroll_variables
		WHERE company_id = $1 AND ($2 = false OR active = true)
		ORDER BY key
	`

	rows, err := q.Query(ctx, query, companyID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll variables: %w", err)
	}
	defer rows.Close()

	var variables []payroll.Variable
	for rows.Next() {
		v, err := scanVariable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll variable: %w", err)
		}
		variables = append(variables, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll variables: %w", err)
	}

	return variables, nil
}

func (r *payrollRepository) DeleteVariableByKey(ctx context.Context, key string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_variables WHERE key = $1 AND company_id = $2`, key, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll variable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrVariableNotFound
	}

	return nil
}
