package response

import (
	"time"

	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/reservation"
	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var copyOpt = copier.Option{CaseSensitive: true}

// copyView fills a response from a read-model row with identically named fields.
func copyView[T any](from any) *T {
	out := new(T)
	if err := copier.CopyWithOption(out, from, copyOpt); err != nil {
		// field sets are fixed at compile time; a failure here is a programming error
		panic("response: " + err.Error())
	}
	return out
}

func copyViews[T any, V any](items []*V) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		out[i] = copyView[T](it)
	}
	return out
}

type BookResponse struct {
	ID        uuid.UUID `json:"id"`
	ISBN      *string   `json:"isbn,omitempty"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Language  string    `json:"language"`
	Edition   string    `json:"edition"`
	CoverURL  string    `json:"cover_url"`
	Copies    int       `json:"copies"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	r := copyView[BookResponse](v)
	r.Available = v.Copies > 0
	return r
}

func FromBookViews(items []*queries.BookView) []*BookResponse {
	out := make([]*BookResponse, len(items))
	for i, v := range items {
		out[i] = FromBookView(v)
	}
	return out
}

type AddBookResponse struct {
	Book      *BookResponse `json:"book"`
	Restocked bool          `json:"restocked"`
}

type LoanResponse struct {
	ID            uuid.UUID  `json:"id"`
	BookID        uuid.UUID  `json:"book_id"`
	BookTitle     string     `json:"book_title"`
	UserID        uuid.UUID  `json:"user_id"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       time.Time  `json:"due_date"`
	Returned      bool       `json:"returned"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	ReturnRequest string     `json:"return_request"`
	LateFee       int64      `json:"late_fee"`
	Reserved      bool       `json:"reserved"`
	State         string     `json:"state"`
	Overdue       bool       `json:"overdue"`
}

func FromLoanView(v *queries.LoanView) *LoanResponse {
	return copyView[LoanResponse](v)
}

func FromLoanViews(items []*queries.LoanView) []*LoanResponse {
	return copyViews[LoanResponse](items)
}

type ReservationResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	LoanID     *uuid.UUID `json:"loan_id,omitempty"`
	ReservedTo uuid.UUID  `json:"reserved_to"`
	Status     string     `json:"status"`
	ReservedAt time.Time  `json:"reserved_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func FromReservationViews(items []*queries.ReservationView) []*ReservationResponse {
	return copyViews[ReservationResponse](items)
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID(),
		BookID:     r.BookID(),
		LoanID:     r.LoanID(),
		ReservedTo: r.ReservedTo(),
		Status:     r.Status().String(),
		ReservedAt: r.ReservedAt(),
		ResolvedAt: r.ResolvedAt(),
	}
}

type BookRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Edition   string    `json:"edition"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromBookRequestViews(items []*queries.BookRequestView) []*BookRequestResponse {
	return copyViews[BookRequestResponse](items)
}

func FromBookRequest(r *bookrequest.BookRequest) *BookRequestResponse {
	return &BookRequestResponse{
		ID:        r.ID(),
		UserID:    r.UserID(),
		Title:     r.Title(),
		Author:    r.Author(),
		Edition:   r.Edition(),
		Category:  r.Category(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt(),
	}
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int                     `json:"unread_count"`
	NextCursor    string                  `json:"next_cursor,omitempty"`
}

func FromNotificationPage(p *queries.NotificationPage) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: copyViews[NotificationResponse](p.Items),
		UnreadCount:   p.UnreadCount,
	}
	if p.Next != nil {
		resp.NextCursor = p.Next.After
	}
	return resp
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
}

func FromUserProfile(v *queries.UserProfileView) *UserResponse {
	return copyView[UserResponse](v)
}

// Page is the envelope of every keyset-paginated list.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

func NewPage[T any](items []T, next *queries.Cursor) Page[T] {
	p := Page[T]{Items: items}
	if next != nil {
		p.NextCursor = next.After
	}
	return p
}
