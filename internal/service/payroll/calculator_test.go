package payroll

import (
	"testing"

	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() payroll.ConfigSnapshot {
	return payroll.DefaultSnapshot(2024)
}

func requireDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"%s = %s, want %s", field, got.String(), want)
}

func requireBreakdownEqual(t *testing.T, want, got payroll.Breakdown) {
	t.Helper()
	assert.Equal(t, want.WorkedDays, got.WorkedDays)
	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"base_salary", want.BaseSalary, got.BaseSalary},
		{"transport_subsidy", want.TransportSubsidy, got.TransportSubsidy},
		{"ibc", want.IBC, got.IBC},
		{"deductions.health", want.Deductions.Health, got.Deductions.Health},
		{"deductions.pension", want.Deductions.Pension, got.Deductions.Pension},
		{"deductions.total", want.Deductions.Total, got.Deductions.Total},
		{"social_security.health.employer", want.SocialSecurity.Health.Employer, got.SocialSecurity.Health.Employer},
		{"social_security.pension.employer", want.SocialSecurity.Pension.Employer, got.SocialSecurity.Pension.Employer},
		{"social_security.occupational_risk.employer", want.SocialSecurity.OccupationalRisk.Employer, got.SocialSecurity.OccupationalRisk.Employer},
		{"parafiscals.sena", want.Parafiscals.Sena, got.Parafiscals.Sena},
		{"parafiscals.icbf", want.Parafiscals.Icbf, got.Parafiscals.Icbf},
		{"parafiscals.compensation_fund", want.Parafiscals.CompensationFund, got.Parafiscals.CompensationFund},
		{"provisions.severance", want.Provisions.Severance, got.Provisions.Severance},
		{"provisions.severance_interest", want.Provisions.SeveranceInterest, got.Provisions.SeveranceInterest},
		{"provisions.service_bonus", want.Provisions.ServiceBonus, got.Provisions.ServiceBonus},
		{"net_pay", want.NetPay, got.NetPay},
		{"employer_cost", want.EmployerCost, got.EmployerCost},
	}
	for _, p := range pairs {
		assert.True(t, p.a.Equal(p.b), "%s: %s != %s", p.name, p.a.String(), p.b.String())
	}
}

// ===== MINIMUM WAGE =====

func TestCalculator_MeetsMinimumWage(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	minWage := decimal.NewFromInt(1300000)

	assert.True(t, calc.MeetsMinimumWage(decimal.NewFromInt(1300000), minWage))
	assert.True(t, calc.MeetsMinimumWage(decimal.NewFromInt(2000000), minWage))
	assert.False(t, calc.MeetsMinimumWage(decimal.NewFromInt(1299999), minWage))
}

func TestCalculator_EffectiveSalary(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	minWage := decimal.NewFromInt(1300000)
	stored := decimal.NewFromInt(900000)

	// Flagged employees follow the configured minimum regardless of the
	// stored salary.
	got := calc.EffectiveSalary(stored, minWage, true)
	requireDec(t, "1300000", got, "effective salary (flagged)")

	got = calc.EffectiveSalary(stored, minWage, false)
	requireDec(t, "900000", got, "effective salary (unflagged)")
}

// ===== FULL MONTH =====

func TestCalculator_FullMonth_MinimumWageEarner(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	b := calc.FullMonth(decimal.NewFromInt(1300000), testSnapshot())

	requireDec(t, "1300000", b.BaseSalary, "base_salary")
	requireDec(t, "162000", b.TransportSubsidy, "transport_subsidy")
	requireDec(t, "1300000", b.IBC, "ibc")

	requireDec(t, "52000", b.Deductions.Health, "deductions.health")
	requireDec(t, "52000", b.Deductions.Pension, "deductions.pension")
	requireDec(t, "104000", b.Deductions.Total, "deductions.total")
	requireDec(t, "1358000", b.NetPay, "net_pay")

	requireDec(t, "110500", b.SocialSecurity.Health.Employer, "health employer")
	requireDec(t, "156000", b.SocialSecurity.Pension.Employer, "pension employer")
	requireDec(t, "6786", b.SocialSecurity.OccupationalRisk.Employer, "arl")
	requireDec(t, "0", b.SocialSecurity.OccupationalRisk.Employee, "arl employee share")

	// Exempt from SENA/ICBF below ten minimum wages; compensation fund due.
	requireDec(t, "0", b.Parafiscals.Sena, "sena")
	requireDec(t, "0", b.Parafiscals.Icbf, "icbf")
	requireDec(t, "52000", b.Parafiscals.CompensationFund, "compensation_fund")

	// Provisions on salary plus subsidy: 1,462,000 base.
	requireDec(t, "121784.6", b.Provisions.Severance, "severance")
	requireDec(t, "1217.846", b.Provisions.SeveranceInterest, "severance_interest")
	requireDec(t, "121784.6", b.Provisions.ServiceBonus, "service_bonus")
}

func TestCalculator_FullMonth_SubsidyCapBoundary(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()

	// At exactly two minimum wages the subsidy is still owed.
	atCap := calc.FullMonth(decimal.NewFromInt(2600000), snap)
	requireDec(t, "162000", atCap.TransportSubsidy, "subsidy at cap")

	aboveCap := calc.FullMonth(decimal.NewFromInt(2600001), snap)
	requireDec(t, "0", aboveCap.TransportSubsidy, "subsidy above cap")
}

func TestCalculator_FullMonth_ParafiscalExemptionBoundary(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()

	// At exactly ten minimum wages the exemption still applies.
	atTen := calc.FullMonth(decimal.NewFromInt(13000000), snap)
	requireDec(t, "0", atTen.Parafiscals.Sena, "sena at 10x")
	requireDec(t, "0", atTen.Parafiscals.Icbf, "icbf at 10x")
	requireDec(t, "520000", atTen.Parafiscals.CompensationFund, "compensation_fund at 10x")

	aboveTen := calc.FullMonth(decimal.NewFromInt(13000001), snap)
	assert.True(t, aboveTen.Parafiscals.Sena.IsPositive(), "sena above 10x should be positive")
	assert.True(t, aboveTen.Parafiscals.Icbf.IsPositive(), "icbf above 10x should be positive")
	requireDec(t, "260000.02", aboveTen.Parafiscals.Sena, "sena above 10x")
	requireDec(t, "390000.03", aboveTen.Parafiscals.Icbf, "icbf above 10x")
}

func TestCalculator_FullMonth_IBCExcludesSubsidy(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	b := calc.FullMonth(decimal.NewFromInt(2000000), testSnapshot())

	requireDec(t, "162000", b.TransportSubsidy, "transport_subsidy")
	requireDec(t, "2000000", b.IBC, "ibc")
}

func TestCalculator_FullMonth_Deterministic(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	salary := decimal.NewFromInt(3456789)

	first := calc.FullMonth(salary, testSnapshot())
	second := calc.FullMonth(salary, testSnapshot())
	requireBreakdownEqual(t, first, second)
}

func TestCalculator_FullMonth_NetPayMonotonicity(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()

	// Both salaries above the subsidy cap so the subsidy step does not
	// interfere.
	lower := calc.FullMonth(decimal.NewFromInt(3000000), snap)
	higher := calc.FullMonth(decimal.NewFromInt(3000001), snap)
	assert.True(t, higher.NetPay.GreaterThanOrEqual(lower.NetPay))
	assert.True(t, higher.EmployerCost.GreaterThanOrEqual(lower.EmployerCost))
}

// ===== PRORATED PERIOD =====

func TestCalculator_PeriodBreakdown_FullMonthIdentity(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()
	salary := decimal.NewFromInt(1300000)

	// A 30-day month worked in full matches the plain monthly calculation,
	// including the severance interest (12% x 30/360 = 1% monthly).
	full := calc.FullMonth(salary, snap)
	prorated := calc.PeriodBreakdown(salary, 30, 30, snap)
	requireBreakdownEqual(t, full, prorated)
}

func TestCalculator_PeriodBreakdown_NetPayMonotonicInWorkedDays(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()
	salary := decimal.NewFromInt(1300000)

	// More days worked never pays less.
	prev := calc.PeriodBreakdown(salary, 0, 30, snap)
	for d := 1; d <= 30; d++ {
		cur := calc.PeriodBreakdown(salary, d, 30, snap)
		assert.True(t, cur.NetPay.GreaterThanOrEqual(prev.NetPay), "net pay decreased at day %d", d)
		assert.True(t, cur.EmployerCost.GreaterThanOrEqual(prev.EmployerCost), "employer cost decreased at day %d", d)
		prev = cur
	}
}

func TestCalculator_PeriodBreakdown_HalfMonth(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	b := calc.PeriodBreakdown(decimal.NewFromInt(1300000), 15, 30, testSnapshot())

	assert.Equal(t, 15, b.WorkedDays)
	requireDec(t, "650000", b.BaseSalary, "base_salary")
	requireDec(t, "81000", b.TransportSubsidy, "transport_subsidy")
	requireDec(t, "650000", b.IBC, "ibc")
	requireDec(t, "52000", b.Deductions.Total, "deductions.total")
	requireDec(t, "679000", b.NetPay, "net_pay")
}

func TestCalculator_PeriodBreakdown_SubsidyCapUsesMonthlySalary(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	// Half a month of a salary above the cap prorates to an amount below the
	// cap; eligibility still follows the monthly salary, so no subsidy.
	b := calc.PeriodBreakdown(decimal.NewFromInt(3000000), 15, 30, testSnapshot())
	requireDec(t, "1500000", b.BaseSalary, "base_salary")
	requireDec(t, "0", b.TransportSubsidy, "transport_subsidy")
}

func TestCalculator_PeriodBreakdown_ClampsWorkedDays(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := testSnapshot()
	salary := decimal.NewFromInt(1300000)

	negative := calc.PeriodBreakdown(salary, -5, 30, snap)
	assert.Equal(t, 0, negative.WorkedDays)
	requireDec(t, "0", negative.BaseSalary, "base_salary with negative days")
	requireDec(t, "0", negative.NetPay, "net_pay with negative days")

	over := calc.PeriodBreakdown(salary, 45, 30, snap)
	whole := calc.PeriodBreakdown(salary, 30, 30, snap)
	requireBreakdownEqual(t, whole, over)
}

func TestCalculator_PeriodBreakdown_ZeroDays(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	b := calc.PeriodBreakdown(decimal.NewFromInt(2500000), 0, 31, testSnapshot())

	assert.Equal(t, 0, b.WorkedDays)
	requireDec(t, "0", b.BaseSalary, "base_salary")
	requireDec(t, "0", b.TransportSubsidy, "transport_subsidy")
	requireDec(t, "0", b.NetPay, "net_pay")
	requireDec(t, "0", b.EmployerCost, "employer_cost")
	requireDec(t, "0", b.Provisions.Total, "provisions.total")
}

func TestCalculator_PeriodBreakdown_ConfiguredValues(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()
	snap := payroll.ConfigSnapshot{
		Source:             payroll.ConfigSourceConfig,
		EffectiveYear:      2025,
		MinimumWage:        decimal.NewFromInt(1423500),
		TransportSubsidy:   decimal.NewFromInt(200000),
		SubsidyCapMultiple: decimal.NewFromInt(2),
	}

	b := calc.FullMonth(decimal.NewFromInt(1423500), snap)
	requireDec(t, "200000", b.TransportSubsidy, "transport_subsidy")
	// 8% employee deductions on the configured wage.
	requireDec(t, "113880", b.Deductions.Total, "deductions.total")
	requireDec(t, "1509620", b.NetPay, "net_pay")
}
