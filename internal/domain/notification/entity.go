package notification

import (
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.Wrap(errs.ErrNotFound, "notification not found")

// Notification is append-only; only the read flag ever changes.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	kind      Kind
	message   string
	isRead    bool
	createdAt time.Time
}

func NewNotification(userID uuid.UUID, kind Kind, message string, now time.Time) *Notification {
	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		kind:      kind,
		message:   message,
		createdAt: now,
	}
}

func ReconstructNotification(id, userID uuid.UUID, kind Kind, message string, isRead bool, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		message:   message,
		isRead:    isRead,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() uuid.UUID        { return n.id }
func (n *Notification) UserID() uuid.UUID    { return n.userID }
func (n *Notification) Kind() Kind           { return n.kind }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
