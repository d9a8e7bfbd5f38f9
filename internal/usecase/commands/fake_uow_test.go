//go:build unit

package commands_test

import (
	"context"
	"sync"
	"sync/atomic"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/reservation"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore mimics the relational store closely enough for the use cases: guarded
// updates, unique isbn, foreign keys, and rollback of everything done inside Within.
type memStore struct {
	mu            sync.Mutex
	books         map[uuid.UUID]book.Book
	loans         map[uuid.UUID]loan.Loan
	reservations  map[uuid.UUID]reservation.Reservation
	requests      map[uuid.UUID]bookrequest.BookRequest
	notifications []notification.Notification

	// failures are consumed once, keyed by "<table>.<operation>"
	failures map[string]func() error
}

func newMemStore() *memStore {
	return &memStore{
		books:        map[uuid.UUID]book.Book{},
		loans:        map[uuid.UUID]loan.Loan{},
		reservations: map[uuid.UUID]reservation.Reservation{},
		requests:     map[uuid.UUID]bookrequest.BookRequest{},
		failures:     map[string]func() error{},
	}
}

func (s *memStore) failOnce(op string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = fn
}

func (s *memStore) injected(op string) error {
	fn, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return fn()
}

func (s *memStore) seedBook(b *book.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[b.ID()] = *b
}

func (s *memStore) seedLoan(l *loan.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[l.ID()] = *l
}

func (s *memStore) seedReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ID()] = *r
}

func (s *memStore) seedBookRequest(r *bookrequest.BookRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID()] = *r
}

func (s *memStore) copiesOf(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.books[id]
	return b.Copies()
}

func (s *memStore) loan(id uuid.UUID) loan.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loans[id]
}

func (s *memStore) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

func (s *memStore) bookCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func (s *memStore) bookByISBN(isbn string) (book.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ISBN().String() == isbn {
			return b, true
		}
	}
	return book.Book{}, false
}

func (s *memStore) notificationsFor(userID uuid.UUID) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for _, n := range s.notifications {
		if n.UserID() == userID {
			out = append(out, n)
		}
	}
	return out
}

// memUoW runs Within with an undo log and WithDB with per-statement commits.
type memUoW struct {
	store *memStore
}

func newMemUoW(store *memStore) *memUoW {
	return &memUoW{store: store}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return errs.Mark(err, errs.ErrUnavailable)
	}
	tx := &memTx{store: u.store, inTx: true}
	if err := fn(ctx, tx); err != nil {
		u.store.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		u.store.mu.Unlock()
		return err
	}
	return nil
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return errs.Mark(err, errs.ErrUnavailable)
	}
	return fn(ctx, &memTx{store: u.store})
}

type memTx struct {
	store *memStore
	inTx  bool
	undo  []func()
}

// record must be called with the store lock held.
func (t *memTx) record(undo func()) {
	if t.inTx {
		t.undo = append(t.undo, undo)
	}
}

func (t *memTx) DB() shared.DBTX                              { return nil }
func (t *memTx) Books() shared.BookRepository                 { return memBooks{t} }
func (t *memTx) Loans() shared.LoanRepository                 { return memLoans{t} }
func (t *memTx) Reservations() shared.ReservationRepository   { return memReservations{t} }
func (t *memTx) BookRequests() shared.BookRequestRepository   { return memBookRequests{t} }
func (t *memTx) Notifications() shared.NotificationRepository { return memNotifications{t} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func conditionFailed(what string) error {
	return infra.WrapRepoErr(what, nil, infra.KindConditionFailed)
}

// =============================================================================
// books
// =============================================================================

type memBooks struct{ tx *memTx }

func (r memBooks) FindByID(_ context.Context, _ shared.DBTX, id uuid.UUID) (*book.Book, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("books.find"); err != nil {
		return nil, err
	}
	b, ok := s.books[id]
	if !ok {
		return nil, notFound("book")
	}
	return &b, nil
}

// LockByID has nothing to hold here; the store mutex already serializes callers.
func (r memBooks) LockByID(_ context.Context, _ shared.DBTX, id uuid.UUID) (*book.Book, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("books.lock"); err != nil {
		return nil, err
	}
	b, ok := s.books[id]
	if !ok {
		return nil, notFound("book")
	}
	return &b, nil
}

func (r memBooks) FindByISBN(_ context.Context, _ shared.DBTX, isbn book.ISBN) (*book.Book, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ISBN() == isbn {
			return &b, nil
		}
	}
	return nil, notFound("book")
}

func (r memBooks) isbnTaken(b *book.Book) bool {
	if b.ISBN().IsZero() {
		return false
	}
	for id, other := range r.tx.store.books {
		if id != b.ID() && other.ISBN() == b.ISBN() {
			return true
		}
	}
	return false
}

func (r memBooks) Create(_ context.Context, _ shared.DBTX, b *book.Book) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("books.create"); err != nil {
		return err
	}
	if r.isbnTaken(b) {
		return infra.WrapRepoErr("duplicate isbn", nil, infra.KindDuplicateKey)
	}
	s.books[b.ID()] = *b
	r.tx.record(func() { delete(s.books, b.ID()) })
	return nil
}

func (r memBooks) Update(_ context.Context, _ shared.DBTX, b *book.Book, withCopies bool) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.books[b.ID()]
	if !ok {
		return notFound("book")
	}
	if r.isbnTaken(b) {
		return infra.WrapRepoErr("duplicate isbn", nil, infra.KindDuplicateKey)
	}
	copies := prev.Copies()
	if withCopies {
		copies = b.Copies()
	}
	s.books[b.ID()] = *book.ReconstructBook(b.ID(), b.ISBN(), b.Details(), copies, prev.CreatedAt(), b.UpdatedAt())
	r.tx.record(func() { s.books[b.ID()] = prev })
	return nil
}

func (r memBooks) Delete(_ context.Context, _ shared.DBTX, id uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.books[id]
	if !ok {
		return notFound("book")
	}
	delete(s.books, id)
	removedLoans := map[uuid.UUID]loan.Loan{}
	for lid, l := range s.loans {
		if l.BookID() == id {
			removedLoans[lid] = l
			delete(s.loans, lid)
		}
	}
	r.tx.record(func() {
		s.books[id] = prev
		for lid, l := range removedLoans {
			s.loans[lid] = l
		}
	})
	return nil
}

func (r memBooks) DecrementCopies(_ context.Context, _ shared.DBTX, id uuid.UUID) (int, error) {
	return r.adjust(id, -1, "books.decrement")
}

func (r memBooks) IncrementCopies(_ context.Context, _ shared.DBTX, id uuid.UUID, delta int) (int, error) {
	return r.adjust(id, delta, "books.increment")
}

func (r memBooks) adjust(id uuid.UUID, delta int, op string) (int, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(op); err != nil {
		return 0, err
	}
	b, ok := s.books[id]
	if !ok {
		if delta < 0 {
			return 0, conditionFailed("no copy available")
		}
		return 0, notFound("book")
	}
	next := b.Copies() + delta
	if next < 0 {
		return 0, conditionFailed("no copy available")
	}
	s.books[id] = *book.ReconstructBook(b.ID(), b.ISBN(), b.Details(), next, b.CreatedAt(), b.UpdatedAt())
	r.tx.record(func() {
		cur := s.books[id]
		s.books[id] = *book.ReconstructBook(cur.ID(), cur.ISBN(), cur.Details(), cur.Copies()-delta, cur.CreatedAt(), cur.UpdatedAt())
	})
	return next, nil
}

// =============================================================================
// loans
// =============================================================================

type memLoans struct{ tx *memTx }

func (r memLoans) Create(_ context.Context, _ shared.DBTX, l *loan.Loan) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("loans.create"); err != nil {
		return err
	}
	if _, ok := s.books[l.BookID()]; !ok {
		return infra.WrapRepoErr("book missing", nil, infra.KindForeignKeyViolated)
	}
	s.loans[l.ID()] = *l
	r.tx.record(func() { delete(s.loans, l.ID()) })
	return nil
}

func (r memLoans) FindByID(_ context.Context, _ shared.DBTX, id uuid.UUID) (*loan.Loan, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[id]
	if !ok {
		return nil, notFound("loan")
	}
	return &l, nil
}

func (r memLoans) HasOpenLoan(_ context.Context, _ shared.DBTX, bookID, userID uuid.UUID) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.loans {
		if l.BookID() == bookID && l.UserID() == userID && !l.Returned() {
			return true, nil
		}
	}
	return false, nil
}

func (r memLoans) CountOpenByBook(_ context.Context, _ shared.DBTX, bookID uuid.UUID) (int, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.loans {
		if l.BookID() == bookID && !l.Returned() {
			n++
		}
	}
	return n, nil
}

func (r memLoans) SaveTransition(_ context.Context, _ shared.DBTX, l *loan.Loan, from loan.ReturnRequest) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("loans.transition"); err != nil {
		return err
	}
	prev, ok := s.loans[l.ID()]
	if !ok || prev.Returned() || prev.ReturnRequest() != from {
		return conditionFailed("loan changed concurrently")
	}
	s.loans[l.ID()] = *loan.ReconstructLoan(l.ID(), prev.BookID(), prev.UserID(), prev.IssueDate(), prev.DueDate(),
		l.Returned(), l.ReturnDate(), l.ReturnRequest(), l.LateFee(), prev.Reserved())
	r.tx.record(func() { s.loans[l.ID()] = prev })
	return nil
}

func (r memLoans) MarkReserved(_ context.Context, _ shared.DBTX, id uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.loans[id]
	if !ok || prev.Returned() {
		return conditionFailed("loan closed")
	}
	next := prev
	_ = next.MarkReserved()
	s.loans[id] = next
	r.tx.record(func() { s.loans[id] = prev })
	return nil
}

// =============================================================================
// reservations
// =============================================================================

type memReservations struct{ tx *memTx }

func (r memReservations) Create(_ context.Context, _ shared.DBTX, res *reservation.Reservation) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[res.BookID()]; !ok {
		return infra.WrapRepoErr("book missing", nil, infra.KindForeignKeyViolated)
	}
	s.reservations[res.ID()] = *res
	r.tx.record(func() { delete(s.reservations, res.ID()) })
	return nil
}

func (r memReservations) FindByID(_ context.Context, _ shared.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return &res, nil
}

func (r memReservations) HasPending(_ context.Context, _ shared.DBTX, bookID, userID uuid.UUID) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, res := range s.reservations {
		if res.BookID() == bookID && res.ReservedTo() == userID && res.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (r memReservations) SaveResolution(_ context.Context, _ shared.DBTX, res *reservation.Reservation) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.reservations[res.ID()]
	if !ok || !prev.IsPending() {
		return conditionFailed("reservation resolved concurrently")
	}
	s.reservations[res.ID()] = *res
	r.tx.record(func() { s.reservations[res.ID()] = prev })
	return nil
}

// =============================================================================
// book requests
// =============================================================================

type memBookRequests struct{ tx *memTx }

func (r memBookRequests) Create(_ context.Context, _ shared.DBTX, req *bookrequest.BookRequest) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID()] = *req
	r.tx.record(func() { delete(s.requests, req.ID()) })
	return nil
}

func (r memBookRequests) FindByID(_ context.Context, _ shared.DBTX, id uuid.UUID) (*bookrequest.BookRequest, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, notFound("book request")
	}
	return &req, nil
}

func (r memBookRequests) SaveResolution(_ context.Context, _ shared.DBTX, req *bookrequest.BookRequest) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.requests[req.ID()]
	if !ok || prev.Status() != bookrequest.StatusPending {
		return conditionFailed("book request resolved concurrently")
	}
	s.requests[req.ID()] = *req
	r.tx.record(func() { s.requests[req.ID()] = prev })
	return nil
}

// =============================================================================
// notifications
// =============================================================================

type memNotifications struct{ tx *memTx }

func (r memNotifications) Create(_ context.Context, _ shared.DBTX, n *notification.Notification) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected("notifications.create"); err != nil {
		return err
	}
	s.notifications = append(s.notifications, *n)
	r.tx.record(func() {
		for i, other := range s.notifications {
			if other.ID() == n.ID() {
				s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r memNotifications) MarkRead(_ context.Context, _ shared.DBTX, id, userID uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID() == id && n.UserID() == userID {
			s.notifications[i] = *notification.ReconstructNotification(n.ID(), n.UserID(), n.Kind(), n.Message(), true, n.CreatedAt())
			return nil
		}
	}
	return notFound("notification")
}

func (r memNotifications) MarkAllRead(_ context.Context, _ shared.DBTX, userID uuid.UUID) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var marked int64
	for i, n := range s.notifications {
		if n.UserID() == userID && !n.IsRead() {
			s.notifications[i] = *notification.ReconstructNotification(n.ID(), n.UserID(), n.Kind(), n.Message(), true, n.CreatedAt())
			marked++
		}
	}
	return marked, nil
}

// =============================================================================
// catalog lookup
// =============================================================================

type fakeCatalog struct {
	entries map[book.ISBN]*shared.CatalogEntry
	err     error
	calls   atomic.Int32
}

func (c *fakeCatalog) LookupByISBN(_ context.Context, isbn book.ISBN) (*shared.CatalogEntry, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	e, ok := c.entries[isbn]
	if !ok {
		return nil, shared.ErrCatalogNoMatch
	}
	return e, nil
}
