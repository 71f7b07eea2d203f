package payroll

import (
	"github.com/gestionsoft/erp-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CONFIG DTOs ==========

type UpsertConfigRequest struct {
	EffectiveYear      int              `json:"effective_year"`
	MinimumWage        decimal.Decimal  `json:"minimum_wage"`
	TransportSubsidy   decimal.Decimal  `json:"transport_subsidy"`
	SubsidyCapMultiple *decimal.Decimal `json:"subsidy_cap_multiple,omitempty"`
	EffectiveFrom      string           `json:"effective_from"` // YYYY-MM-DD
}

func (r *UpsertConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EffectiveYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "effective_year", Message: "must be 2000 or later"})
	}
	if !r.MinimumWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "minimum_wage", Message: "must be greater than zero"})
	}
	if r.TransportSubsidy.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "transport_subsidy", Message: "must be non-negative"})
	}
	if r.SubsidyCapMultiple != nil && !r.SubsidyCapMultiple.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "subsidy_cap_multiple", Message: "must be greater than zero"})
	}
	if r.EffectiveFrom == "" {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConfigResponse struct {
	ID                 string          `json:"id,omitempty"`
	Source             string          `json:"source"`
	EffectiveYear      int             `json:"effective_year"`
	MinimumWage        decimal.Decimal `json:"minimum_wage"`
	TransportSubsidy   decimal.Decimal `json:"transport_subsidy"`
	SubsidyCapMultiple decimal.Decimal `json:"subsidy_cap_multiple"`
	EffectiveFrom      *string         `json:"effective_from,omitempty"`
}

// ========== PERIOD DTOs ==========

type CalculatePayrollRequest struct {
	Period string `json:"period"` // YYYY-MM
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Period == "" {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "is required (format: YYYY-MM)"})
	} else if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must match YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	PaymentDate *string `json:"payment_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be a valid date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID                  string          `json:"id,omitempty"`
	Period              string          `json:"period"`
	Employees           []Breakdown     `json:"employees"`
	TotalNetPay         decimal.Decimal `json:"total_net_pay"`
	TotalEmployerCost   decimal.Decimal `json:"total_employer_cost"`
	TotalSocialSecurity decimal.Decimal `json:"total_social_security"`
	TotalParafiscals    decimal.Decimal `json:"total_parafiscals"`
	TotalProvisions     decimal.Decimal `json:"total_provisions"`
	AppliedConfig       *ConfigSnapshot `json:"applied_config,omitempty"`
	Status              string          `json:"status"`
	CalculatedAt        string          `json:"calculated_at"`
	PaidAt              *string         `json:"paid_at,omitempty"`
}

type CalculateSummary struct {
	EmployeeCount       int             `json:"employee_count"`
	TotalNetPay         decimal.Decimal `json:"total_net_pay"`
	TotalEmployerCost   decimal.Decimal `json:"total_employer_cost"`
	TotalSocialSecurity decimal.Decimal `json:"total_social_security"`
	TotalParafiscals    decimal.Decimal `json:"total_parafiscals"`
	TotalProvisions     decimal.Decimal `json:"total_provisions"`
}

type CalculatePayrollResponse struct {
	Period  PeriodResponse   `json:"period"`
	Summary CalculateSummary `json:"summary"`
}

// ========== VARIABLE DTOs ==========

type UpsertVariableRequest struct {
	Name          string           `json:"name"`
	Key           string           `json:"key"`
	Type          string           `json:"type"` // number, string or boolean
	NumberValue   *decimal.Decimal `json:"number_value,omitempty"`
	TextValue     *string          `json:"text_value,omitempty"`
	BoolValue     *bool            `json:"bool_value,omitempty"`
	Description   *string          `json:"description,omitempty"`
	EffectiveYear *int             `json:"effective_year,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       *string          `json:"end_date,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

func (r *UpsertVariableRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{Field: "key", Message: "is required"})
	} else if !validator.IsValidVariableKey(r.Key) {
		errs = append(errs, validator.ValidationError{Field: "key", Message: "must be a snake_case identifier"})
	}
	switch VariableType(r.Type) {
	case VariableTypeNumber:
		if r.NumberValue == nil {
			errs = append(errs, validator.ValidationError{Field: "number_value", Message: "is required for number variables"})
		}
	case VariableTypeString:
		if r.TextValue == nil {
			errs = append(errs, validator.ValidationError{Field: "text_value", Message: "is required for string variables"})
		}
	case VariableTypeBoolean:
		if r.BoolValue == nil {
			errs = append(errs, validator.ValidationError{Field: "bool_value", Message: "is required for boolean variables"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'number', 'string' or 'boolean'"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VariableResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Key           string           `json:"key"`
	Type          string           `json:"type"`
	NumberValue   *decimal.Decimal `json:"number_value,omitempty"`
	TextValue     *string          `json:"text_value,omitempty"`
	BoolValue     *bool            `json:"bool_value,omitempty"`
	Description   *string          `json:"description,omitempty"`
	EffectiveYear *int             `json:"effective_year,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       *string          `json:"end_date,omitempty"`
	Active        bool             `json:"active"`
}
