package payroll

import (
	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	decZero = decimal.Zero
	decOne  = decimal.NewFromInt(1)
	dec360  = decimal.NewFromInt(360)
)

// Calculator computes Colombian statutory payroll. All arithmetic runs on
// decimals so repeated calculations of the same inputs are bit-identical.
type Calculator struct {
	rates payroll.Rates
}

func NewCalculator() *Calculator {
	return &Calculator{rates: payroll.DefaultRates()}
}

func (c *Calculator) Rates() payroll.Rates {
	return c.rates
}

// EffectiveSalary returns the monthly salary used for calculation. Employees
// flagged as minimum-wage earners always follow the configured minimum, so a
// wage update never leaves them below the legal floor.
func (c *Calculator) EffectiveSalary(baseSalary, minimumWage decimal.Decimal, usesMinimumWage bool) decimal.Decimal {
	if usesMinimumWage {
		return minimumWage
	}
	return baseSalary
}

// MeetsMinimumWage reports whether a salary is at or above the legal minimum.
func (c *Calculator) MeetsMinimumWage(salary, minimumWage decimal.Decimal) bool {
	return salary.GreaterThanOrEqual(minimumWage)
}

// ReceivesTransportSubsidy applies the legal cap: the subsidy is owed while
// the monthly salary does not exceed the configured multiple of the minimum
// wage. The cap test always uses the full monthly salary, not the prorated
// amount.
func (c *Calculator) ReceivesTransportSubsidy(monthlySalary decimal.Decimal, snap payroll.ConfigSnapshot) bool {
	cap := snap.MinimumWage.Mul(snap.SubsidyCapMultiple)
	return monthlySalary.LessThanOrEqual(cap)
}

// FullMonth calculates the complete payroll for one employee over a full
// month. Severance interest accrues at the flat monthly rate.
func (c *Calculator) FullMonth(monthlySalary decimal.Decimal, snap payroll.ConfigSnapshot) payroll.Breakdown {
	b := c.breakdown(monthlySalary, decOne, c.rates.SeveranceInterestMonthly, snap)
	b.WorkedDays = 30
	return b
}

// PeriodBreakdown calculates payroll prorated by worked days within the
// month. Days are clamped to [0, daysInMonth]; severance interest is prorated
// on the 360-day commercial year.
func (c *Calculator) PeriodBreakdown(monthlySalary decimal.Decimal, workedDays, daysInMonth int, snap payroll.ConfigSnapshot) payroll.Breakdown {
	days := workedDays
	if days < 0 {
		days = 0
	}
	if days > daysInMonth {
		days = daysInMonth
	}

	proportion := decZero
	if daysInMonth > 0 {
		proportion = decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(int64(daysInMonth)))
	}
	interestFactor := c.rates.SeveranceInterestAnnual.Mul(decimal.NewFromInt(int64(days))).Div(dec360)

	b := c.breakdown(monthlySalary, proportion, interestFactor, snap)
	b.WorkedDays = days
	return b
}

// breakdown is the shared calculation core. proportion scales salary and
// subsidy; interestFactor is applied to the severance provision. Subsidy
// eligibility and the parafiscal exemption are decided on the full monthly
// salary before proration, and the transport subsidy never enters the IBC.
func (c *Calculator) breakdown(monthlySalary, proportion, interestFactor decimal.Decimal, snap payroll.ConfigSnapshot) payroll.Breakdown {
	salary := monthlySalary.Mul(proportion)

	subsidy := decZero
	if c.ReceivesTransportSubsidy(monthlySalary, snap) {
		subsidy = snap.TransportSubsidy.Mul(proportion)
	}

	ibc := salary

	health := ibc.Mul(c.rates.HealthEmployee)
	pension := ibc.Mul(c.rates.PensionEmployee)
	deductions := payroll.EmployeeDeductions{
		Health:  health,
		Pension: pension,
		Total:   health.Add(pension),
	}

	healthEmployer := ibc.Mul(c.rates.HealthEmployer)
	pensionEmployer := ibc.Mul(c.rates.PensionEmployer)
	arl := ibc.Mul(c.rates.OccupationalRisk)
	socialSecurity := payroll.SocialSecurity{
		Health:           payroll.SplitAmount{Employer: healthEmployer, Employee: health, Total: healthEmployer.Add(health)},
		Pension:          payroll.SplitAmount{Employer: pensionEmployer, Employee: pension, Total: pensionEmployer.Add(pension)},
		OccupationalRisk: payroll.SplitAmount{Employer: arl, Employee: decZero, Total: arl},
	}

	// SENA and ICBF are exempt up to the exemption multiple; contributions
	// apply only when the monthly salary is strictly above it (Ley 1607 de
	// 2012). The compensation fund is never exempt.
	parafiscalBase := decZero
	exemptionCap := snap.MinimumWage.Mul(c.rates.ParafiscalExemptionMultiple)
	if monthlySalary.GreaterThan(exemptionCap) {
		parafiscalBase = ibc
	}
	sena := parafiscalBase.Mul(c.rates.Sena)
	icbf := parafiscalBase.Mul(c.rates.Icbf)
	compensationFund := ibc.Mul(c.rates.CompensationFund)
	parafiscals := payroll.Parafiscals{
		Sena:             sena,
		Icbf:             icbf,
		CompensationFund: compensationFund,
		Total:            sena.Add(icbf).Add(compensationFund),
	}

	provisionBase := salary.Add(subsidy)
	severance := provisionBase.Mul(c.rates.Severance)
	severanceInterest := severance.Mul(interestFactor)
	serviceBonus := provisionBase.Mul(c.rates.ServiceBonus)
	provisions := payroll.Provisions{
		Severance:         severance,
		SeveranceInterest: severanceInterest,
		ServiceBonus:      serviceBonus,
		Total:             severance.Add(severanceInterest).Add(serviceBonus),
	}

	earned := salary.Add(subsidy)
	netPay := earned.Sub(deductions.Total)
	employerCost := earned.
		Add(healthEmployer).
		Add(pensionEmployer).
		Add(arl).
		Add(parafiscals.Total).
		Add(provisions.Total)

	return payroll.Breakdown{
		BaseSalary:       salary,
		TransportSubsidy: subsidy,
		IBC:              ibc,
		Deductions:       deductions,
		SocialSecurity:   socialSecurity,
		Parafiscals:      parafiscals,
		Provisions:       provisions,
		NetPay:           netPay,
		EmployerCost:     employerCost,
	}
}
