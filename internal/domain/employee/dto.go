package employee

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID              string          `json:"id"`
	EmployeeCode    string          `json:"employee_code"`
	FullName        string          `json:"full_name"`
	Position        string          `json:"position,omitempty"`
	Department      string          `json:"department,omitempty"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	HireDate        string          `json:"hire_date"`
	TerminationDate *string         `json:"termination_date,omitempty"`
	Status          string          `json:"status"`
	UsesMinimumWage bool            `json:"uses_minimum_wage"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int                `json:"total_count"`
}
