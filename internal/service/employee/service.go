package employee

import (
	"context"
	"fmt"

	"github.com/gestionsoft/erp-backend-go/internal/domain/employee"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/database"
	payrollService "github.com/gestionsoft/erp-backend-go/internal/service/payroll"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeServiceImpl is a read-only directory over the employee master data.
// Employee mutation belongs to the HR module, not payroll.
type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func (s *EmployeeServiceImpl) ListEligible(ctx context.Context, period string) (employee.ListEmployeeResponse, error) {
	start, end, _, err := payrollService.ResolvePeriod(period)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, err := s.employeeRepo.GetEligibleForPeriod(ctx, companyID, start, end)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Data:       responses,
		TotalCount: len(responses),
	}, nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(e), nil
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:              e.ID,
		EmployeeCode:    e.EmployeeCode,
		FullName:        e.FullName,
		Position:        e.Position,
		Department:      e.Department,
		BaseSalary:      e.BaseSalary,
		HireDate:        e.HireDate.Format("2006-01-02"),
		Status:          string(e.Status),
		UsesMinimumWage: e.UsesMinimumWage,
	}
	if e.TerminationDate != nil {
		terminationDate := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &terminationDate
	}
	return resp
}
