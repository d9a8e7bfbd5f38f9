package repository

import (
	"context"
	"time"

	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/infra"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type BookRequestRepository struct{}

func NewBookRequestRepository() *BookRequestRepository {
	return &BookRequestRepository{}
}

func (r *BookRequestRepository) Create(ctx context.Context, db shared.DBTX, req *bookrequest.BookRequest) error {
	_, err := execStmt(ctx, db, pg.Insert(tableBookRequests).Prepared(true).Rows(goqu.Record{
		"id":         req.ID(),
		"user_id":    req.UserID(),
		"title":      req.Title(),
		"author":     req.Author(),
		"edition":    req.Edition(),
		"category":   req.Category(),
		"status":     req.Status().String(),
		"created_at": req.CreatedAt(),
	}))
	if err != nil {
		return infra.WrapRepoErr("failed to create book request", err)
	}
	return nil
}

func (r *BookRequestRepository) FindByID(ctx context.Context, db shared.DBTX, id uuid.UUID) (*bookrequest.BookRequest, error) {
	row, err := queryRow(ctx, db, pg.From(tableBookRequests).Prepared(true).
		Select("id", "user_id", "title", "author", "edition", "category", "status", "created_at").
		Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book request query", err, infra.KindDBFailure)
	}

	var (
		reqID, userID                    uuid.UUID
		title, author, edition, category string
		status                           string
		createdAt                        time.Time
	)
	if err := row.Scan(&reqID, &userID, &title, &author, &edition, &category, &status, &createdAt); err != nil {
		return nil, infra.WrapRepoErr("failed to find book request", err)
	}
	return bookrequest.ReconstructBookRequest(reqID, userID, title, author, edition, category,
		bookrequest.Status(status), createdAt), nil
}

func (r *BookRequestRepository) SaveResolution(ctx context.Context, db shared.DBTX, req *bookrequest.BookRequest) error {
	tag, err := execStmt(ctx, db, pg.Update(tableBookRequests).Prepared(true).
		Set(goqu.Record{"status": req.Status().String()}).
		Where(
			goqu.C("id").Eq(req.ID()),
			goqu.C("status").Eq(bookrequest.StatusPending.String()),
		))
	if err != nil {
		return infra.WrapRepoErr("failed to update book request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book request resolved concurrently", nil, infra.KindConditionFailed)
	}
	return nil
}
