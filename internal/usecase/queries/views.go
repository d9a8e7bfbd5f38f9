package queries

import (
	"time"

	"github.com/google/uuid"
)

type BookView struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ISBN      *string   `json:"isbn,omitempty" db:"isbn"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Genre     string    `json:"genre" db:"genre"`
	Language  string    `json:"language" db:"language"`
	Edition   string    `json:"edition" db:"edition"`
	CoverURL  string    `json:"cover_url" db:"cover_url"`
	Copies    int       `json:"copies" db:"copies"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type LoanView struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	BookID        uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle     string     `json:"book_title" db:"book_title"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	IssueDate     time.Time  `json:"issue_date" db:"issue_date"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	Returned      bool       `json:"returned" db:"returned"`
	ReturnDate    *time.Time `json:"return_date,omitempty" db:"return_date"`
	ReturnRequest string     `json:"return_request" db:"return_request"`
	LateFee       int64      `json:"late_fee" db:"late_fee"`
	Reserved      bool       `json:"reserved" db:"reserved"`

	State   string `json:"state" db:"-"`
	Overdue bool   `json:"overdue" db:"-"`
}

type ReservationView struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle  string     `json:"book_title" db:"book_title"`
	LoanID     *uuid.UUID `json:"loan_id,omitempty" db:"loan_id"`
	ReservedTo uuid.UUID  `json:"reserved_to" db:"reserved_to"`
	Status     string     `json:"status" db:"status"`
	ReservedAt time.Time  `json:"reserved_at" db:"reserved_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

type BookRequestView struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Edition   string    `json:"edition" db:"edition"`
	Category  string    `json:"category" db:"category"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Kind      string    `json:"kind" db:"kind"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserProfileView mirrors the identity provider's profile row. Only id and role are
// authoritative for lending decisions.
type UserProfileView struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Role           string    `json:"role" db:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty" db:"profile_picture"`
}
