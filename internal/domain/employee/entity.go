package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID              string
	CompanyID       string
	EmployeeCode    string
	FullName        string
	Position        string
	Department      string
	BaseSalary      decimal.Decimal
	HireDate        time.Time
	TerminationDate *time.Time
	Status          EmploymentStatus
	UsesMinimumWage bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive    EmploymentStatus = "active"
	EmploymentStatusInactive  EmploymentStatus = "inactive"
	EmploymentStatusSuspended EmploymentStatus = "suspended"
)
