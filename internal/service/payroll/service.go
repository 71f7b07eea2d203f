package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gestionsoft/erp-backend-go/internal/domain/employee"
	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/database"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/validator"
	"github.com/gestionsoft/erp-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	calc         *Calculator

	// one lock per (company, period) so concurrent calculations of the same
	// period serialize instead of racing the read-modify-write
	periodLocks sync.Map
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		calc:         NewCalculator(),
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *PayrollServiceImpl) lockPeriod(companyID, period string) func() {
	v, _ := s.periodLocks.LoadOrStore(companyID+":"+period, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) CalculateForPeriod(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.CalculatePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	periodStart, periodEnd, daysInMonth, err := ResolvePeriod(req.Period)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	snap, err := s.resolveSnapshot(ctx, companyID, periodEnd)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	employees, err := s.employeeRepo.GetEligibleForPeriod(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}
	if len(employees) == 0 {
		return payroll.CalculatePayrollResponse{}, payroll.ErrNoEligibleEmployees
	}

	// Validate the whole roster before any calculation so a single
	// below-minimum salary aborts the run without partial writes.
	var wageErrs validator.ValidationErrors
	for _, e := range employees {
		if e.UsesMinimumWage {
			continue
		}
		if !s.calc.MeetsMinimumWage(e.BaseSalary, snap.MinimumWage) {
			wageErrs = append(wageErrs, validator.ValidationError{
				Field:   e.EmployeeCode,
				Message: fmt.Sprintf("salary %s is below the minimum wage %s", e.BaseSalary.String(), snap.MinimumWage.String()),
			})
		}
	}
	if len(wageErrs) > 0 {
		return payroll.CalculatePayrollResponse{}, wageErrs
	}

	record := s.buildRecord(companyID, req.Period, employees, snap, periodStart, periodEnd, daysInMonth)

	unlock := s.lockPeriod(companyID, req.Period)
	defer unlock()

	var saved payroll.Period
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.payrollRepo.GetPeriodByPeriod(txCtx, req.Period, companyID)
		if errors.Is(err, payroll.ErrPayrollPeriodNotFound) {
			saved, err = s.payrollRepo.InsertPeriod(txCtx, record)
			return err
		}
		if err != nil {
			return err
		}
		if existing.Status == payroll.PeriodStatusPaid {
			return payroll.ErrPayrollAlreadyPaid
		}

		record.ID = existing.ID
		saved, err = s.payrollRepo.ReplacePeriod(txCtx, record)
		return err
	})
	if err != nil {
		return payroll.CalculatePayrollResponse{}, err
	}

	resp := toPeriodResponse(saved)
	return payroll.CalculatePayrollResponse{
		Period: resp,
		Summary: payroll.CalculateSummary{
			EmployeeCount:       len(saved.Employees),
			TotalNetPay:         saved.TotalNetPay,
			TotalEmployerCost:   saved.TotalEmployerCost,
			TotalSocialSecurity: saved.TotalSocialSecurity,
			TotalParafiscals:    saved.TotalParafiscals,
			TotalProvisions:     saved.TotalProvisions,
		},
	}, nil
}

func (s *PayrollServiceImpl) buildRecord(
	companyID, period string,
	employees []employee.Employee,
	snap payroll.ConfigSnapshot,
	periodStart, periodEnd time.Time,
	daysInMonth int,
) payroll.Period {
	record := payroll.Period{
		CompanyID:           companyID,
		Period:              period,
		Employees:           make([]payroll.Breakdown, 0, len(employees)),
		TotalNetPay:         decimal.Zero,
		TotalEmployerCost:   decimal.Zero,
		TotalSocialSecurity: decimal.Zero,
		TotalParafiscals:    decimal.Zero,
		TotalProvisions:     decimal.Zero,
		AppliedConfig:       snap,
		Status:              payroll.PeriodStatusCalculated,
		CalculatedAt:        time.Now().UTC(),
	}

	for _, e := range employees {
		salary := s.calc.EffectiveSalary(e.BaseSalary, snap.MinimumWage, e.UsesMinimumWage)
		days := WorkedDays(e, periodStart, periodEnd)

		b := s.calc.PeriodBreakdown(salary, days, daysInMonth, snap)
		b.EmployeeID = e.ID
		b.EmployeeCode = e.EmployeeCode
		b.EmployeeName = e.FullName
		record.Employees = append(record.Employees, b)

		socialSecurity := b.SocialSecurity.Health.Total.
			Add(b.SocialSecurity.Pension.Total).
			Add(b.SocialSecurity.OccupationalRisk.Total)

		record.TotalNetPay = record.TotalNetPay.Add(b.NetPay)
		record.TotalEmployerCost = record.TotalEmployerCost.Add(b.EmployerCost)
		record.TotalSocialSecurity = record.TotalSocialSecurity.Add(socialSecurity)
		record.TotalParafiscals = record.TotalParafiscals.Add(b.Parafiscals.Total)
		record.TotalProvisions = record.TotalProvisions.Add(b.Provisions.Total)
	}

	return record
}

// resolveSnapshot picks the config version in force at the given date,
// preferring a company version over the global one, and falls back to the
// legal defaults when nothing is stored.
func (s *PayrollServiceImpl) resolveSnapshot(ctx context.Context, companyID string, at time.Time) (payroll.ConfigSnapshot, error) {
	cfg, err := s.payrollRepo.GetConfigForDate(ctx, companyID, at)
	if errors.Is(err, payroll.ErrConfigNotFound) {
		return payroll.DefaultSnapshot(at.Year()), nil
	}
	if err != nil {
		return payroll.ConfigSnapshot{}, err
	}
	return cfg.Snapshot(), nil
}

// ========== PERIOD QUERIES & TRANSITIONS ==========

func (s *PayrollServiceImpl) GetByPeriod(ctx context.Context, period string) (payroll.PeriodResponse, error) {
	if !validator.IsValidPeriod(period) {
		return payroll.PeriodResponse{}, payroll.ErrInvalidPeriod
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	p, err := s.payrollRepo.GetPeriodByPeriod(ctx, period, companyID)
	if errors.Is(err, payroll.ErrPayrollPeriodNotFound) {
		// Not calculated yet: an empty record, not an error.
		return payroll.PeriodResponse{
			Period:              period,
			Employees:           []payroll.Breakdown{},
			TotalNetPay:         decimal.Zero,
			TotalEmployerCost:   decimal.Zero,
			TotalSocialSecurity: decimal.Zero,
			TotalParafiscals:    decimal.Zero,
			TotalProvisions:     decimal.Zero,
			Status:              string(payroll.PeriodStatusCalculated),
			CalculatedAt:        time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(p), nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string, req payroll.MarkPaidRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	p, err := s.payrollRepo.GetPeriodByID(ctx, id, companyID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	switch p.Status {
	case payroll.PeriodStatusPaid:
		return payroll.PeriodResponse{}, payroll.ErrPayrollAlreadyPaid
	case payroll.PeriodStatusAnnulled:
		return payroll.PeriodResponse{}, payroll.ErrPayrollAnnulled
	}

	paidAt := time.Now().UTC()
	if req.PaymentDate != nil {
		parsed, _ := validator.IsValidDate(*req.PaymentDate)
		paidAt = parsed
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, id, companyID, payroll.PeriodStatusPaid, &paidAt); err != nil {
		return payroll.PeriodResponse{}, err
	}

	p.Status = payroll.PeriodStatusPaid
	p.PaidAt = &paidAt
	return toPeriodResponse(p), nil
}

func (s *PayrollServiceImpl) Reopen(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	p, err := s.payrollRepo.GetPeriodByID(ctx, id, companyID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if p.Status != payroll.PeriodStatusPaid {
		return payroll.PeriodResponse{}, payroll.ErrPayrollNotPaid
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, id, companyID, payroll.PeriodStatusCalculated, nil); err != nil {
		return payroll.PeriodResponse{}, err
	}

	p.Status = payroll.PeriodStatusCalculated
	p.PaidAt = nil
	return toPeriodResponse(p), nil
}

func (s *PayrollServiceImpl) Annul(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	p, err := s.payrollRepo.GetPeriodByID(ctx, id, companyID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if p.Status == payroll.PeriodStatusAnnulled {
		return payroll.PeriodResponse{}, payroll.ErrPayrollAnnulled
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, id, companyID, payroll.PeriodStatusAnnulled, nil); err != nil {
		return payroll.PeriodResponse{}, err
	}

	p.Status = payroll.PeriodStatusAnnulled
	p.PaidAt = nil
	return toPeriodResponse(p), nil
}

// ========== CONFIG ==========

func (s *PayrollServiceImpl) ResolveConfig(ctx context.Context) (payroll.ConfigResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	snap, err := s.resolveSnapshot(ctx, companyID, time.Now().UTC())
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	return snapshotToConfigResponse(snap), nil
}

func (s *PayrollServiceImpl) UpsertConfig(ctx context.Context, req payroll.UpsertConfigRequest) (payroll.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ConfigResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)
	capMultiple := payroll.DefaultSubsidyCapMultiple
	if req.SubsidyCapMultiple != nil {
		capMultiple = *req.SubsidyCapMultiple
	}

	created, err := s.payrollRepo.CreateConfig(ctx, payroll.Config{
		CompanyID:          &companyID,
		EffectiveYear:      req.EffectiveYear,
		MinimumWage:        req.MinimumWage,
		TransportSubsidy:   req.TransportSubsidy,
		SubsidyCapMultiple: capMultiple,
		EffectiveFrom:      effectiveFrom,
	})
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	return toConfigResponse(created), nil
}

func (s *PayrollServiceImpl) ListConfigHistory(ctx context.Context) ([]payroll.ConfigResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	configs, err := s.payrollRepo.ListConfigs(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		responses = append(responses, toConfigResponse(cfg))
	}
	return responses, nil
}

// ========== VARIABLES ==========

func (s *PayrollServiceImpl) UpsertVariable(ctx context.Context, req payroll.UpsertVariableRequest) (payroll.VariableResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.VariableResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.VariableResponse{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	v := payroll.Variable{
		CompanyID:     companyID,
		Name:          req.Name,
		Key:           req.Key,
		Type:          payroll.VariableType(req.Type),
		NumberValue:   req.NumberValue,
		TextValue:     req.TextValue,
		BoolValue:     req.BoolValue,
		Description:   req.Description,
		EffectiveYear: req.EffectiveYear,
		Active:        active,
	}
	if req.StartDate != nil {
		parsed, _ := validator.IsValidDate(*req.StartDate)
		v.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, _ := validator.IsValidDate(*req.EndDate)
		v.EndDate = &parsed
	}

	saved, err := s.payrollRepo.UpsertVariable(ctx, v)
	if err != nil {
		return payroll.VariableResponse{}, err
	}

	return toVariableResponse(saved), nil
}

func (s *PayrollServiceImpl) ListVariables(ctx context.Context, activeOnly bool) ([]payroll.VariableResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	variables, err := s.payrollRepo.ListVariables(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.VariableResponse, 0, len(variables))
	for _, v := range variables {
		responses = append(responses, toVariableResponse(v))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) DeleteVariable(ctx context.Context, key string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteVariableByKey(ctx, key, companyID)
}

// ========== MAPPERS ==========

func toPeriodResponse(p payroll.Period) payroll.PeriodResponse {
	snap := p.AppliedConfig
	resp := payroll.PeriodResponse{
		ID:                  p.ID,
		Period:              p.Period,
		Employees:           p.Employees,
		TotalNetPay:         p.TotalNetPay,
		TotalEmployerCost:   p.TotalEmployerCost,
		TotalSocialSecurity: p.TotalSocialSecurity,
		TotalParafiscals:    p.TotalParafiscals,
		TotalProvisions:     p.TotalProvisions,
		AppliedConfig:       &snap,
		Status:              string(p.Status),
		CalculatedAt:        p.CalculatedAt.Format(time.RFC3339),
	}
	if resp.Employees == nil {
		resp.Employees = []payroll.Breakdown{}
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func toConfigResponse(c payroll.Config) payroll.ConfigResponse {
	effectiveFrom := c.EffectiveFrom.Format("2006-01-02")
	return payroll.ConfigResponse{
		ID:                 c.ID,
		Source:             string(payroll.ConfigSourceConfig),
		EffectiveYear:      c.EffectiveYear,
		MinimumWage:        c.MinimumWage,
		TransportSubsidy:   c.TransportSubsidy,
		SubsidyCapMultiple: c.SubsidyCapMultiple,
		EffectiveFrom:      &effectiveFrom,
	}
}

func snapshotToConfigResponse(snap payroll.ConfigSnapshot) payroll.ConfigResponse {
	resp := payroll.ConfigResponse{
		Source:             string(snap.Source),
		EffectiveYear:      snap.EffectiveYear,
		MinimumWage:        snap.MinimumWage,
		TransportSubsidy:   snap.TransportSubsidy,
		SubsidyCapMultiple: snap.SubsidyCapMultiple,
	}
	if snap.ConfigID != nil {
		resp.ID = *snap.ConfigID
	}
	if snap.EffectiveFrom != nil {
		effectiveFrom := snap.EffectiveFrom.Format("2006-01-02")
		resp.EffectiveFrom = &effectiveFrom
	}
	return resp
}

func toVariableResponse(v payroll.Variable) payroll.VariableResponse {
	resp := payroll.VariableResponse{
		ID:            v.ID,
		Name:          v.Name,
		Key:           v.Key,
		Type:          string(v.Type),
		NumberValue:   v.NumberValue,
		TextValue:     v.TextValue,
		BoolValue:     v.BoolValue,
		Description:   v.Description,
		EffectiveYear: v.EffectiveYear,
		Active:        v.Active,
	}
	if v.StartDate != nil {
		startDate := v.StartDate.Format("2006-01-02")
		resp.StartDate = &startDate
	}
	if v.EndDate != nil {
		endDate := v.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}
