//go:build e2e

package lending_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/user"
	"library-lending/internal/handler/dto/response"
	"library-lending/internal/usecase/shared"
	"library-lending/tests/common/authtest"
	"library-lending/tests/common/dbtest"
	"library-lending/tests/common/httptest"
	"library-lending/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	booksURL        = "/api/books"
	loansURL        = "/api/loans"
	loanURL         = "/api/loans/%s"
	reservationsURL = "/api/reservations"
	notificationURL = "/api/notifications"
)

type LendingSuite struct {
	e2e.SharedSuite
}

func TestLendingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LendingSuite))
}

// =============================================================================
// Catalog
// =============================================================================

func (s *LendingSuite) TestAddOrRestock() {
	s.Run("Normal case: unknown isbn is looked up once, then restocked", func() {
		t := s.T()
		librarian := s.Login("desk@example.com", user.RoleLibrarian)
		s.Catalog.Put("9781449373320", shared.CatalogEntry{
			Title:      "Designing Data-Intensive Applications",
			Authors:    []string{"Martin Kleppmann"},
			Categories: []string{"Computers"},
			Year:       "2017",
		})

		body := map[string]any{"isbn": "978-1-4493-7332-0", "copies_delta": 2}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, body, librarian.Token)
		var created response.AddBookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.False(t, created.Restocked)
		require.Equal(t, "Designing Data-Intensive Applications", created.Book.Title)
		require.Equal(t, 2, created.Book.Copies)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, body, librarian.Token)
		var restocked response.AddBookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &restocked)
		require.True(t, restocked.Restocked)
		require.Equal(t, created.Book.ID, restocked.Book.ID)
		require.Equal(t, 4, dbtest.BookCopies(t, s.DB, created.Book.ID))
		require.Equal(t, 1, s.Catalog.Calls("9781449373320"))
	})

	s.Run("Abnormal case: member cannot add books", func() {
		t := s.T()
		member := s.Login("reader@example.com", user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, map[string]any{"isbn": "111", "copies_delta": 1}, member.Token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Abnormal case: catalog outage without manual fields is retryable", func() {
		t := s.T()
		librarian := s.Login("desk@example.com", user.RoleLibrarian)
		s.Catalog.SetDown(true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, map[string]any{"isbn": "222", "copies_delta": 1}, librarian.Token)
		body := httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "Service temporarily unavailable")
		require.Equal(t, true, body.Detail["retryable"])
		require.Equal(t, "unavailable", body.Detail["reason"])
	})
}

// =============================================================================
// Loans
// =============================================================================

func (s *LendingSuite) TestLoanLifecycle() {
	s.Run("Normal case: issue, request return, approve", func() {
		t := s.T()
		member := s.Login("reader@example.com", user.RoleMember)
		librarian := s.Login("desk@example.com", user.RoleLibrarian)
		bookID := dbtest.CreateTestBook(t, s.DB, "9780134190440", "The Go Programming Language", 3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, member.Token,
			httptest.WithHeader("X-Request-ID", "desk-issue-1"))
		var issued response.LoanResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &issued)
		httptest.AssertHeaders(t, w, map[string]string{"X-Request-ID": "desk-issue-1"})
		require.Equal(t, 2, dbtest.BookCopies(t, s.DB, bookID))
		require.Equal(t, 14*24.0, issued.DueDate.Sub(issued.IssueDate).Hours())
		require.Equal(t, 1, dbtest.NotificationCount(t, s.DB, member.UserID, string(notification.KindBookIssued)))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(loanURL, issued.ID)+"/return-request", nil, member.Token)
		var pending response.LoanResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &pending)
		require.Equal(t, "pending", pending.ReturnRequest)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(loanURL, issued.ID)+"/return-approve", nil, librarian.Token)
		var returned response.LoanResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &returned)

		want := response.LoanResponse{
			ID:            issued.ID,
			BookID:        bookID,
			BookTitle:     "The Go Programming Language",
			UserID:        member.UserID,
			Returned:      true,
			ReturnRequest: "approved",
			LateFee:       0,
			State:         "returned",
		}
		opts := cmpopts.IgnoreFields(response.LoanResponse{}, "IssueDate", "DueDate", "ReturnDate")
		if diff := cmp.Diff(want, returned, opts); diff != "" {
			t.Fatalf("returned loan mismatch (-want +got):\n%s", diff)
		}
		require.NotNil(t, returned.ReturnDate)
		require.Equal(t, 3, dbtest.BookCopies(t, s.DB, bookID))
		require.Equal(t,
			[]string{string(notification.KindReturnApproved), string(notification.KindBookIssued)},
			dbtest.NotificationKinds(t, s.DB, member.UserID))
	})

	s.Run("Abnormal case: member cannot approve a return", func() {
		t := s.T()
		member := s.Login("reader@example.com", user.RoleMember)
		bookID := dbtest.CreateTestBook(t, s.DB, "", "Local History", 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, member.Token)
		var issued response.LoanResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &issued)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(loanURL, issued.ID)+"/return-approve", nil, member.Token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Abnormal case: out of stock leaves no loan behind", func() {
		t := s.T()
		member := s.Login("reader@example.com", user.RoleMember)
		bookID := dbtest.CreateTestBook(t, s.DB, "", "Out of print", 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, member.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "no copies available")
		require.Equal(t, 0, dbtest.OpenLoanCount(t, s.DB, bookID))
		require.Equal(t, 0, dbtest.BookCopies(t, s.DB, bookID))
	})

	s.Run("Concurrency: the last copy is issued exactly once", func() {
		t := s.T()
		bookID := dbtest.CreateTestBook(t, s.DB, "", "Last Copy", 1)

		const patrons = 6
		sessions := make([]authtest.Session, patrons)
		for i := range sessions {
			sessions[i] = s.Login(fmt.Sprintf("patron%d@example.com", i), user.RoleMember)
		}

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			codes = map[int]int{}
		)
		for _, sess := range sessions {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, token)
				mu.Lock()
				codes[w.Code]++
				mu.Unlock()
			}(sess.Token)
		}
		wg.Wait()

		require.Equal(t, 1, codes[http.StatusCreated], "codes: %v", codes)
		require.Equal(t, patrons-1, codes[http.StatusConflict], "codes: %v", codes)
		require.Equal(t, 0, dbtest.BookCopies(t, s.DB, bookID))
		require.Equal(t, 1, dbtest.OpenLoanCount(t, s.DB, bookID))
	})

	s.Run("Concurrency: deleting a book never drops a loan issued at the same time", func() {
		t := s.T()
		librarian := s.Login("shelf@example.com", user.RoleLibrarian)
		patron := s.Login("racer@example.com", user.RoleMember)

		for round := range 8 {
			bookID := dbtest.CreateTestBook(t, s.DB, "", fmt.Sprintf("Contested %d", round), 1)

			var (
				wg                 sync.WaitGroup
				issueCode, delCode int
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, patron.Token)
				issueCode = w.Code
			}()
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodDelete, booksURL+"/"+bookID.String(), nil, librarian.Token)
				delCode = w.Code
			}()
			wg.Wait()

			switch delCode {
			case http.StatusNoContent:
				require.Contains(t, []int{http.StatusNotFound, http.StatusConflict}, issueCode, "round %d", round)
				require.False(t, dbtest.BookExists(t, s.DB, bookID))
			case http.StatusConflict:
				require.Equal(t, http.StatusCreated, issueCode, "round %d", round)
				require.Equal(t, 1, dbtest.OpenLoanCount(t, s.DB, bookID))
				require.Equal(t, 0, dbtest.BookCopies(t, s.DB, bookID))
			default:
				t.Fatalf("round %d: delete=%d issue=%d", round, delCode, issueCode)
			}
		}
	})

	s.Run("Normal case: members only list their own loans", func() {
		t := s.T()
		alice := s.Login("alice@example.com", user.RoleMember)
		bob := s.Login("bob@example.com", user.RoleMember)
		bookID := dbtest.CreateTestBook(t, s.DB, "", "Shared Shelf", 5)

		for _, sess := range []authtest.Session{alice, bob} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loansURL, map[string]any{"book_id": bookID}, sess.Token)
			httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, loansURL+"?user_id="+bob.UserID.String(), nil, alice.Token)
		var page response.Page[*response.LoanResponse]
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 1)
		require.Equal(t, alice.UserID, page.Items[0].UserID)
	})
}

// =============================================================================
// Reservations & notifications
// =============================================================================

func (s *LendingSuite) TestReservationNotifies() {
	s.Run("Normal case: approval notifies the patron once", func() {
		t := s.T()
		member := s.Login("reader@example.com", user.RoleMember)
		librarian := s.Login("desk@example.com", user.RoleLibrarian)
		bookID := dbtest.CreateTestBook(t, s.DB, "", "Dune", 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, map[string]any{"book_id": bookID}, member.Token)
		var reservation response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &reservation)
		require.Equal(t, "pending", reservation.Status)

		approve := reservationsURL + "/" + reservation.ID.String() + "/approve"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, approve, nil, librarian.Token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, approve, nil, librarian.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already resolved")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationURL+"?unread_only=true", nil, member.Token)
		var inbox response.NotificationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &inbox)
		require.Len(t, inbox.Notifications, 1)
		require.Equal(t, string(notification.KindReservationApproved), inbox.Notifications[0].Kind)
		require.Equal(t, 1, inbox.UnreadCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, notificationURL+"/read-all", nil, member.Token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, notificationURL, nil, member.Token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &inbox)
		require.Equal(t, 0, inbox.UnreadCount)
	})

	s.Run("Abnormal case: unknown reservation", func() {
		t := s.T()
		librarian := s.Login("desk@example.com", user.RoleLibrarian)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+uuid.NewString()+"/reject", nil, librarian.Token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "reservation not found")
	})

	s.Run("Abnormal case: expired token", func() {
		t := s.T()
		token := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, uuid.New(), user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}
