// Package cycle implements the budget-cycle arithmetic: installment
// scheduling across month boundaries and the rollover plan that advances a
// profile to its next accounting month.
//
// Everything in this package is pure computation over in-memory snapshots;
// persistence is applied by the store package.
package cycle

import (
	"fmt"
	"time"
)

// Cycle is one accounting month.
type Cycle struct {
	Year  int
	Month int // 1-12
}

// Parse parses a "YYYY-MM" cycle string.
func Parse(s string) (Cycle, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Cycle{}, fmt.Errorf("invalid cycle %q: %w", s, err)
	}
	return Cycle{Year: t.Year(), Month: int(t.Month())}, nil
}

// Current returns the cycle containing now.
func Current(now time.Time) Cycle {
	return Cycle{Year: now.Year(), Month: int(now.Month())}
}

// AddMonths returns the cycle n months after c. The month index is unbounded
// before normalization, so year rollover falls out of the arithmetic:
// 2024-11 + 2 = 2025-01.
func (c Cycle) AddMonths(n int) Cycle {
	idx := c.Month + n // 1-based, unbounded
	return Cycle{
		Year:  c.Year + (idx-1)/12,
		Month: (idx-1)%12 + 1,
	}
}

// Next returns the following cycle.
func (c Cycle) Next() Cycle {
	return c.AddMonths(1)
}

// String formats the cycle as "YYYY-MM".
func (c Cycle) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
}

// FirstDay returns the date string all entries of this cycle carry
// ("YYYY-MM-01"). The day component is always pinned to 01; cycle membership
// is a prefix match on this string.
func (c Cycle) FirstDay() string {
	return c.String() + "-01"
}
