package repository

import (
	"context"
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookColumns = []any{
	"id", "isbn", "title", "author", "genre", "language", "edition", "cover_url", "copies", "created_at", "updated_at",
}

type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) FindByID(ctx context.Context, db shared.DBTX, id uuid.UUID) (*book.Book, error) {
	row, err := queryRow(ctx, db, pg.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book query", err, infra.KindDBFailure)
	}
	b, err := scanBook(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	return b, nil
}

func (r *BookRepository) LockByID(ctx context.Context, db shared.DBTX, id uuid.UUID) (*book.Book, error) {
	row, err := queryRow(ctx, db, pg.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book lock query", err, infra.KindDBFailure)
	}
	b, err := scanBook(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock book", err)
	}
	return b, nil
}

func (r *BookRepository) FindByISBN(ctx context.Context, db shared.DBTX, isbn book.ISBN) (*book.Book, error) {
	row, err := queryRow(ctx, db, pg.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("isbn").Eq(isbn.String())))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book query", err, infra.KindDBFailure)
	}
	b, err := scanBook(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find book by isbn", err)
	}
	return b, nil
}

func (r *BookRepository) Create(ctx context.Context, db shared.DBTX, b *book.Book) error {
	record := bookRecord(b)
	record["id"] = b.ID()
	record["copies"] = b.Copies()
	record["created_at"] = b.CreatedAt()

	if _, err := execStmt(ctx, db, pg.Insert(tableBooks).Prepared(true).Rows(record)); err != nil {
		return infra.WrapRepoErr("failed to create book", err)
	}
	return nil
}

func (r *BookRepository) Update(ctx context.Context, db shared.DBTX, b *book.Book, withCopies bool) error {
	record := bookRecord(b)
	if withCopies {
		record["copies"] = b.Copies()
	}

	tag, err := execStmt(ctx, db, pg.Update(tableBooks).Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(b.ID())))
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, db shared.DBTX, id uuid.UUID) error {
	tag, err := execStmt(ctx, db, pg.Delete(tableBooks).Prepared(true).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) DecrementCopies(ctx context.Context, db shared.DBTX, id uuid.UUID) (int, error) {
	row, err := queryRow(ctx, db, pg.Update(tableBooks).Prepared(true).
		Set(goqu.Record{
			"copies":     goqu.L("copies - 1"),
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id), goqu.C("copies").Gt(0)).
		Returning("copies"))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build copy decrement", err, infra.KindDBFailure)
	}

	var copies int
	if err := row.Scan(&copies); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("no copy available", err, infra.KindConditionFailed)
		}
		return 0, infra.WrapRepoErr("failed to decrement copies", err)
	}
	return copies, nil
}

func (r *BookRepository) IncrementCopies(ctx context.Context, db shared.DBTX, id uuid.UUID, delta int) (int, error) {
	row, err := queryRow(ctx, db, pg.Update(tableBooks).Prepared(true).
		Set(goqu.Record{
			"copies":     goqu.L("copies + ?", delta),
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id)).
		Returning("copies"))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build copy increment", err, infra.KindDBFailure)
	}

	var copies int
	if err := row.Scan(&copies); err != nil {
		return 0, infra.WrapRepoErr("failed to increment copies", err)
	}
	return copies, nil
}

func bookRecord(b *book.Book) goqu.Record {
	return goqu.Record{
		"isbn":       pgconv.StringToPgtype(b.ISBN().String()),
		"title":      b.Title(),
		"author":     b.Author(),
		"genre":      b.Genre(),
		"language":   b.Language(),
		"edition":    b.Edition(),
		"cover_url":  b.CoverURL(),
		"updated_at": b.UpdatedAt(),
	}
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		id                   uuid.UUID
		isbn                 pgtype.Text
		d                    book.Details
		copies               int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &isbn, &d.Title, &d.Author, &d.Genre, &d.Language, &d.Edition, &d.CoverURL,
		&copies, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return book.ReconstructBook(id, book.ISBN(pgconv.StringFromPgtype(isbn)), d, copies, createdAt, updatedAt), nil
}
