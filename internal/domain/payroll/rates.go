package payroll

import "github.com/shopspring/decimal"

// Rates holds the statutory contribution percentages. They are fixed by law
// rather than per-company configuration, but carrying them as a value makes
// future-year changes a data update instead of a code change.
type Rates struct {
	HealthEmployee  decimal.Decimal
	PensionEmployee decimal.Decimal

	HealthEmployer   decimal.Decimal
	PensionEmployer  decimal.Decimal
	OccupationalRisk decimal.Decimal // ARL risk level I

	Sena             decimal.Decimal
	Icbf             decimal.Decimal
	CompensationFund decimal.Decimal

	Severance                decimal.Decimal // 1/12 of earnings
	SeveranceInterestMonthly decimal.Decimal // flat monthly rate on severance
	SeveranceInterestAnnual  decimal.Decimal // annual rate, prorated days/360
	ServiceBonus             decimal.Decimal // 1/12 of earnings

	// ParafiscalExemptionMultiple: salaries at or below this many minimum
	// wages are exempt from SENA and ICBF (Ley 1607 de 2012). The exemption
	// test is strict: contributions apply only above the threshold.
	ParafiscalExemptionMultiple decimal.Decimal
}

// DefaultRates returns the rates currently mandated by Colombian law.
func DefaultRates() Rates {
	return Rates{
		HealthEmployee:  decimal.RequireFromString("0.04"),
		PensionEmployee: decimal.RequireFromString("0.04"),

		HealthEmployer:   decimal.RequireFromString("0.085"),
		PensionEmployer:  decimal.RequireFromString("0.12"),
		OccupationalRisk: decimal.RequireFromString("0.00522"),

		Sena:             decimal.RequireFromString("0.02"),
		Icbf:             decimal.RequireFromString("0.03"),
		CompensationFund: decimal.RequireFromString("0.04"),

		Severance:                decimal.RequireFromString("0.0833"),
		SeveranceInterestMonthly: decimal.RequireFromString("0.01"),
		SeveranceInterestAnnual:  decimal.RequireFromString("0.12"),
		ServiceBonus:             decimal.RequireFromString("0.0833"),

		ParafiscalExemptionMultiple: decimal.NewFromInt(10),
	}
}

// Fallback configuration used when no Config row exists for the tenant.
var (
	DefaultMinimumWage        = decimal.NewFromInt(1300000)
	DefaultTransportSubsidy   = decimal.NewFromInt(162000)
	DefaultSubsidyCapMultiple = decimal.NewFromInt(2)
)

// DefaultSnapshot builds the hardcoded fallback snapshot for a given year.
func DefaultSnapshot(year int) ConfigSnapshot {
	return ConfigSnapshot{
		Source:             ConfigSourceDefault,
		EffectiveYear:      year,
		MinimumWage:        DefaultMinimumWage,
		TransportSubsidy:   DefaultTransportSubsidy,
		SubsidyCapMultiple: DefaultSubsidyCapMultiple,
	}
}

// Snapshot freezes a stored configuration version for embedding in a period
// record.
func (c Config) Snapshot() ConfigSnapshot {
	id := c.ID
	effectiveFrom := c.EffectiveFrom
	return ConfigSnapshot{
		Source:             ConfigSourceConfig,
		ConfigID:           &id,
		EffectiveYear:      c.EffectiveYear,
		EffectiveFrom:      &effectiveFrom,
		MinimumWage:        c.MinimumWage,
		TransportSubsidy:   c.TransportSubsidy,
		SubsidyCapMultiple: c.SubsidyCapMultiple,
	}
}
