package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is one version of the legally mandated payroll constants. Versions
// are append-only: an update inserts a new row with its own effective date so
// historical calculations keep resolving against the values that were in
// force at the time.
type Config struct {
	ID                 string
	CompanyID          *string // nil = global configuration
	EffectiveYear      int
	MinimumWage        decimal.Decimal
	TransportSubsidy   decimal.Decimal
	SubsidyCapMultiple decimal.Decimal
	EffectiveFrom      time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ConfigSource marks where a resolved configuration came from.
type ConfigSource string

const (
	ConfigSourceConfig  ConfigSource = "config"
	ConfigSourceDefault ConfigSource = "default"
)

// ConfigSnapshot is the frozen copy of the configuration a payroll run was
// calculated with. It is embedded in the period record so later config edits
// never change stored results.
type ConfigSnapshot struct {
	Source             ConfigSource    `json:"source"`
	ConfigID           *string         `json:"config_id,omitempty"`
	EffectiveYear      int             `json:"effective_year"`
	EffectiveFrom      *time.Time      `json:"effective_from,omitempty"`
	MinimumWage        decimal.Decimal `json:"minimum_wage"`
	TransportSubsidy   decimal.Decimal `json:"transport_subsidy"`
	SubsidyCapMultiple decimal.Decimal `json:"subsidy_cap_multiple"`
}

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusCalculated PeriodStatus = "calculated"
	PeriodStatusPaid       PeriodStatus = "paid"
	PeriodStatusAnnulled   PeriodStatus = "annulled"
)

// SplitAmount is an employer/employee split of one social security concept.
type SplitAmount struct {
	Employer decimal.Decimal `json:"employer"`
	Employee decimal.Decimal `json:"employee"`
	Total    decimal.Decimal `json:"total"`
}

type EmployeeDeductions struct {
	Health  decimal.Decimal `json:"health"`
	Pension decimal.Decimal `json:"pension"`
	Total   decimal.Decimal `json:"total"`
}

type SocialSecurity struct {
	Health           SplitAmount `json:"health"`
	Pension          SplitAmount `json:"pension"`
	OccupationalRisk SplitAmount `json:"occupational_risk"`
}

// Parafiscals are the employer-only contributions to SENA, ICBF and the
// compensation fund.
type Parafiscals struct {
	Sena             decimal.Decimal `json:"sena"`
	Icbf             decimal.Decimal `json:"icbf"`
	CompensationFund decimal.Decimal `json:"compensation_fund"`
	Total            decimal.Decimal `json:"total"`
}

// Provisions are the statutory social benefit accruals (cesantías, interest
// on cesantías, prima de servicios).
type Provisions struct {
	Severance         decimal.Decimal `json:"severance"`
	SeveranceInterest decimal.Decimal `json:"severance_interest"`
	ServiceBonus      decimal.Decimal `json:"service_bonus"`
	Total             decimal.Decimal `json:"total"`
}

// Breakdown is the full payroll line for one employee in one period. Salary
// and subsidy are already prorated by worked days; IBC excludes the transport
// subsidy by law.
type Breakdown struct {
	EmployeeID       string             `json:"employee_id"`
	EmployeeCode     string             `json:"employee_code,omitempty"`
	EmployeeName     string             `json:"employee_name,omitempty"`
	WorkedDays       int                `json:"worked_days"`
	BaseSalary       decimal.Decimal    `json:"base_salary"`
	TransportSubsidy decimal.Decimal    `json:"transport_subsidy"`
	IBC              decimal.Decimal    `json:"ibc"`
	Deductions       EmployeeDeductions `json:"deductions"`
	SocialSecurity   SocialSecurity     `json:"social_security"`
	Parafiscals      Parafiscals        `json:"parafiscals"`
	Provisions       Provisions         `json:"provisions"`
	NetPay           decimal.Decimal    `json:"net_pay"`
	EmployerCost     decimal.Decimal    `json:"employer_cost"`
}

// Period is the stored payroll run for one (period, company) pair. The
// employee breakdown and the applied configuration snapshot are embedded
// documents; totals are denormalized sums over the breakdown.
type Period struct {
	ID                  string
	CompanyID           string
	Period              string // YYYY-MM
	Employees           []Breakdown
	TotalNetPay         decimal.Decimal
	TotalEmployerCost   decimal.Decimal
	TotalSocialSecurity decimal.Decimal
	TotalParafiscals    decimal.Decimal
	TotalProvisions     decimal.Decimal
	AppliedConfig       ConfigSnapshot
	Status              PeriodStatus
	CalculatedAt        time.Time
	PaidAt              *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// VariableType enum
type VariableType string

const (
	VariableTypeNumber  VariableType = "number"
	VariableTypeString  VariableType = "string"
	VariableTypeBoolean VariableType = "boolean"
)

// Variable is a company-scoped named payroll parameter used by reporting and
// future calculation concepts, keyed uniquely per company.
type Variable struct {
	ID            string
	CompanyID     string
	Name          string
	Key           string
	Type          VariableType
	NumberValue   *decimal.Decimal
	TextValue     *string
	BoolValue     *bool
	Description   *string
	EffectiveYear *int
	StartDate     *time.Time
	EndDate       *time.Time
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
