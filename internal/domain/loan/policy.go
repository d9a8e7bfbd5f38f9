package loan

import (
	"math"
	"time"
)

const (
	DefaultPeriod        = 14 * 24 * time.Hour
	DefaultLateFeePerDay = 5
)

type Policy struct {
	Period        time.Duration
	LateFeePerDay int64
}

func DefaultPolicy() Policy {
	return Policy{Period: DefaultPeriod, LateFeePerDay: DefaultLateFeePerDay}
}

func (p Policy) DueDate(issuedAt time.Time) time.Time {
	return issuedAt.Add(p.Period)
}

// DaysOverdue counts started days past due; returning any time on or before the due
// date counts as zero.
func DaysOverdue(dueDate, returnedAt time.Time) int64 {
	late := returnedAt.Sub(dueDate)
	if late <= 0 {
		return 0
	}
	return int64(math.Ceil(late.Hours() / 24))
}

func (p Policy) LateFee(dueDate, returnedAt time.Time) int64 {
	return DaysOverdue(dueDate, returnedAt) * p.LateFeePerDay
}
