package commands

import (
	"library-lending/internal/domain/loan"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"
)

var (
	ErrStaffOnly         = errs.Wrap(errs.ErrForbidden, "librarian role required")
	ErrISBNRequired      = errs.Wrap(errs.ErrValidation, "isbn is required")
	ErrReservationTarget = errs.Wrap(errs.ErrValidation, "exactly one of book_id or loan_id is required")
)

// LendingOptions carries the lending policy and the optional duplicate guards.
type LendingOptions struct {
	Policy                       loan.Policy
	PreventDuplicateLoans        bool
	PreventDuplicateReservations bool
}

func NewLendingOptions(cfg config.LendingConfig) LendingOptions {
	policy := loan.DefaultPolicy()
	if cfg.LoanPeriod > 0 {
		policy.Period = cfg.LoanPeriod
	}
	if cfg.LateFeePerDay > 0 {
		policy.LateFeePerDay = cfg.LateFeePerDay
	}
	return LendingOptions{
		Policy:                       policy,
		PreventDuplicateLoans:        cfg.PreventDuplicateLoans,
		PreventDuplicateReservations: cfg.PreventDuplicateReservations,
	}
}
