package bookrequest

import (
	"strings"
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookRequestNotFound = errs.Wrap(errs.ErrNotFound, "book request not found")
	ErrAlreadyResolved     = errs.Wrap(errs.ErrInvalidState, "book request already resolved")
	ErrTitleRequired       = errs.Wrap(errs.ErrValidation, "title is required")
	ErrInvalidStatus       = errs.Wrap(errs.ErrValidation, "invalid book request status")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Submission struct {
	Title    string
	Author   string
	Edition  string
	Category string
}

// BookRequest is a patron asking the library to acquire a title.
type BookRequest struct {
	id        uuid.UUID
	userID    uuid.UUID
	title     string
	author    string
	edition   string
	category  string
	status    Status
	createdAt time.Time
}

func NewBookRequest(userID uuid.UUID, s Submission, now time.Time) (*BookRequest, error) {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	return &BookRequest{
		id:        uuid.New(),
		userID:    userID,
		title:     title,
		author:    strings.TrimSpace(s.Author),
		edition:   strings.TrimSpace(s.Edition),
		category:  strings.TrimSpace(s.Category),
		status:    StatusPending,
		createdAt: now,
	}, nil
}

func ReconstructBookRequest(id, userID uuid.UUID, title, author, edition, category string, status Status, createdAt time.Time) *BookRequest {
	return &BookRequest{
		id:        id,
		userID:    userID,
		title:     title,
		author:    author,
		edition:   edition,
		category:  category,
		status:    status,
		createdAt: createdAt,
	}
}

func (r *BookRequest) Approve() error { return r.resolve(StatusApproved) }

func (r *BookRequest) Reject() error { return r.resolve(StatusRejected) }

func (r *BookRequest) resolve(to Status) error {
	if r.status != StatusPending {
		return ErrAlreadyResolved
	}
	r.status = to
	return nil
}

func (r *BookRequest) ID() uuid.UUID        { return r.id }
func (r *BookRequest) UserID() uuid.UUID    { return r.userID }
func (r *BookRequest) Title() string        { return r.title }
func (r *BookRequest) Author() string       { return r.author }
func (r *BookRequest) Edition() string      { return r.edition }
func (r *BookRequest) Category() string     { return r.category }
func (r *BookRequest) Status() Status       { return r.status }
func (r *BookRequest) CreatedAt() time.Time { return r.createdAt }
