package request

import (
	"strings"

	"library-lending/internal/usecase/queries"
)

// ListQuery carries the keyset pagination parameters shared by every list endpoint.
type ListQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1"`
	After string `form:"after"`
}

func (q ListQuery) Cursor() *queries.Cursor {
	after := strings.TrimSpace(q.After)
	if after == "" {
		return nil
	}
	return &queries.Cursor{After: after}
}

type BookListQuery struct {
	ListQuery
	Search    string `form:"q" binding:"omitempty,max=255"`
	Genre     string `form:"genre" binding:"omitempty,max=255"`
	Available bool   `form:"available"`
}

func (q BookListQuery) ToFilter() queries.BookFilter {
	return queries.BookFilter{Search: q.Search, Genre: q.Genre, AvailableOnly: q.Available}
}

type LoanListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=open return_requested returned overdue"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	BookID string `form:"book_id" binding:"omitempty,uuid"`
}

type ReservationListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	BookID string `form:"book_id" binding:"omitempty,uuid"`
}

type BookRequestListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type NotificationListQuery struct {
	ListQuery
	UnreadOnly bool `form:"unread_only"`
}
