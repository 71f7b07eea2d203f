package payroll

import (
	"testing"
	"time"

	"github.com/gestionsoft/erp-backend-go/internal/domain/employee"
	"github.com/gestionsoft/erp-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
		wantDays  int
	}{
		{"2024-01", date(2024, time.January, 1), date(2024, time.January, 31), 31},
		{"2024-02", date(2024, time.February, 1), date(2024, time.February, 29), 29}, // leap year
		{"2023-02", date(2023, time.February, 1), date(2023, time.February, 28), 28},
		{"2024-06", date(2024, time.June, 1), date(2024, time.June, 30), 30},
		{"2024-12", date(2024, time.December, 1), date(2024, time.December, 31), 31},
	}
	for _, c := range cases {
		start, end, days, err := ResolvePeriod(c.period)
		require.NoError(t, err, c.period)
		assert.Equal(t, c.wantStart, start, c.period)
		assert.Equal(t, c.wantEnd, end, c.period)
		assert.Equal(t, c.wantDays, days, c.period)
	}
}

func TestResolvePeriod_Invalid(t *testing.T) {
	t.Parallel()

	invalid := []string{"", "2024", "2024-13", "2024-00", "2024-1", "2024/01", "2024-01-15", "abcd-ef"}
	for _, period := range invalid {
		_, _, _, err := ResolvePeriod(period)
		assert.ErrorIs(t, err, payroll.ErrInvalidPeriod, period)
	}
}

func TestWorkedDays_FullPeriod(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	e := employee.Employee{HireDate: date(2023, time.March, 1)}
	assert.Equal(t, 31, WorkedDays(e, start, end))
}

func TestWorkedDays_HiredMidMonth(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	// Hired on the 15th of a 31-day month: the 15th through the 31st.
	e := employee.Employee{HireDate: date(2024, time.January, 15)}
	assert.Equal(t, 17, WorkedDays(e, start, end))
}

func TestWorkedDays_TerminatedMidMonth(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	term := date(2024, time.January, 10)
	e := employee.Employee{
		HireDate:        date(2023, time.March, 1),
		TerminationDate: &term,
		Status:          employee.EmploymentStatusInactive,
	}
	assert.Equal(t, 10, WorkedDays(e, start, end))
}

func TestWorkedDays_ActiveWithTerminationDate(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	// A scheduled termination date does not clip the window while the
	// employee is still active.
	term := date(2024, time.January, 10)
	e := employee.Employee{
		HireDate:        date(2023, time.March, 1),
		TerminationDate: &term,
		Status:          employee.EmploymentStatusActive,
	}
	assert.Equal(t, 31, WorkedDays(e, start, end))
}

func TestWorkedDays_HiredAndTerminatedWithinMonth(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	term := date(2024, time.January, 20)
	e := employee.Employee{
		HireDate:        date(2024, time.January, 10),
		TerminationDate: &term,
		Status:          employee.EmploymentStatusInactive,
	}
	assert.Equal(t, 11, WorkedDays(e, start, end))
}

func TestWorkedDays_SingleDay(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	term := date(2024, time.January, 10)
	e := employee.Employee{
		HireDate:        date(2024, time.January, 10),
		TerminationDate: &term,
		Status:          employee.EmploymentStatusInactive,
	}
	assert.Equal(t, 1, WorkedDays(e, start, end))
}

func TestWorkedDays_NoOverlap(t *testing.T) {
	t.Parallel()
	start, end, _, err := ResolvePeriod("2024-01")
	require.NoError(t, err)

	// Hired after the period ends.
	hiredLater := employee.Employee{HireDate: date(2024, time.February, 1)}
	assert.Equal(t, 0, WorkedDays(hiredLater, start, end))

	// Terminated before the period starts.
	term := date(2023, time.December, 31)
	leftEarlier := employee.Employee{
		HireDate:        date(2023, time.January, 1),
		TerminationDate: &term,
		Status:          employee.EmploymentStatusInactive,
	}
	assert.Equal(t, 0, WorkedDays(leftEarlier, start, end))
}

func TestWorkedDays_LeapFebruary(t *testing.T) {
	t.Parallel()
	start, end, days, err := ResolvePeriod("2024-02")
	require.NoError(t, err)
	require.Equal(t, 29, days)

	e := employee.Employee{HireDate: date(2020, time.June, 1)}
	assert.Equal(t, 29, WorkedDays(e, start, end))
}
