package readstore

import (
	"context"

	"library-lending/internal/domain/loan"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type LoanReadStore struct {
	db shared.DBTX
}

func NewLoanReadStore(db shared.DBTX) *LoanReadStore {
	return &LoanReadStore{db: db}
}

func loanSelect() *goqu.SelectDataset {
	return pg.From(goqu.T("issued_books").As("l")).Prepared(true).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("l.book_id").Eq(goqu.I("b.id")))).
		Select(
			goqu.I("l.id"), goqu.I("l.book_id"), goqu.I("b.title").As("book_title"), goqu.I("l.user_id"),
			goqu.I("l.issue_date"), goqu.I("l.due_date"), goqu.I("l.returned"), goqu.I("l.return_date"),
			goqu.I("l.return_request"), goqu.I("l.late_fee"), goqu.I("l.reserved"),
		)
}

func (s *LoanReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LoanView, error) {
	return selectOne[queries.LoanView](ctx, s.db, loanSelect().Where(goqu.I("l.id").Eq(id)), "loan")
}

func (s *LoanReadStore) List(ctx context.Context, filter queries.LoanFilter, after *queries.Keyset, limit int) ([]*queries.LoanView, error) {
	return selectAll[queries.LoanView](ctx, s.db, listLoansQuery(filter, after, limit), "loans")
}

func listLoansQuery(filter queries.LoanFilter, after *queries.Keyset, limit int) *goqu.SelectDataset {
	ds := loanSelect()
	if filter.UserID != nil {
		ds = ds.Where(goqu.I("l.user_id").Eq(*filter.UserID))
	}
	if filter.BookID != nil {
		ds = ds.Where(goqu.I("l.book_id").Eq(*filter.BookID))
	}

	pending := loan.ReturnRequestPending.String()
	switch filter.Status {
	case queries.LoanStatusOpen:
		ds = ds.Where(goqu.I("l.returned").IsFalse(), goqu.I("l.return_request").Neq(pending))
	case queries.LoanStatusReturnRequested:
		ds = ds.Where(goqu.I("l.returned").IsFalse(), goqu.I("l.return_request").Eq(pending))
	case queries.LoanStatusReturned:
		ds = ds.Where(goqu.I("l.returned").IsTrue())
	case queries.LoanStatusOverdue:
		ds = ds.Where(goqu.I("l.returned").IsFalse(), goqu.I("l.due_date").Lt(filter.Now))
	}

	if after != nil {
		ds = ds.Where(keysetBefore("l.issue_date", "l.id", after))
	}
	return ds.Order(goqu.I("l.issue_date").Desc(), goqu.I("l.id").Desc()).Limit(uint(limit))
}
