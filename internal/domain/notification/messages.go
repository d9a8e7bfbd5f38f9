package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindBookIssued          Kind = "book_issued"
	KindReturnApproved      Kind = "return_approved"
	KindReturnRejected      Kind = "return_rejected"
	KindReservationApproved Kind = "reservation_approved"
	KindReservationRejected Kind = "reservation_rejected"
	KindBookRequestApproved Kind = "book_request_approved"
	KindBookRequestRejected Kind = "book_request_rejected"
)

const dueDateLayout = "Jan 2, 2006"

func BookIssued(userID uuid.UUID, title string, due time.Time, now time.Time) *Notification {
	msg := fmt.Sprintf("You borrowed %q. Please return it by %s.", title, due.Format(dueDateLayout))
	return NewNotification(userID, KindBookIssued, msg, now)
}

func ReturnApproved(userID uuid.UUID, title string, lateFee int64, now time.Time) *Notification {
	msg := fmt.Sprintf("Your return of %q was approved.", title)
	if lateFee > 0 {
		msg = fmt.Sprintf("Your return of %q was approved. A late fee of %d is due.", title, lateFee)
	}
	return NewNotification(userID, KindReturnApproved, msg, now)
}

func ReturnRejected(userID uuid.UUID, title string, now time.Time) *Notification {
	msg := fmt.Sprintf("Your return request for %q was rejected. Please contact the library.", title)
	return NewNotification(userID, KindReturnRejected, msg, now)
}

func ReservationResolved(userID uuid.UUID, title string, approved bool, now time.Time) *Notification {
	if approved {
		return NewNotification(userID, KindReservationApproved,
			fmt.Sprintf("Your reservation for %q was approved.", title), now)
	}
	return NewNotification(userID, KindReservationRejected,
		fmt.Sprintf("Your reservation for %q was rejected.", title), now)
}

func BookRequestResolved(userID uuid.UUID, title string, approved bool, now time.Time) *Notification {
	if approved {
		return NewNotification(userID, KindBookRequestApproved,
			fmt.Sprintf("Good news: your request for %q was approved.", title), now)
	}
	return NewNotification(userID, KindBookRequestRejected,
		fmt.Sprintf("Your request for %q was not approved.", title), now)
}
