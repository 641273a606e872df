// Package memory is a single-process implementation of every booking store.
// Each conditional operation runs under one mutex, which makes it atomic in
// the same way a conditional UPDATE is atomic in postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/piresc/tukang/services/booking"
)

type Store struct {
	mu            sync.Mutex
	bookings      map[string]*models.Booking
	workers       map[string]*models.Worker
	users         map[string]*models.User
	services      map[string]*models.Service
	notifications map[string]*models.Notification
}

func NewStore() *Store {
	return &Store{
		bookings:      make(map[string]*models.Booking),
		workers:       make(map[string]*models.Worker),
		users:         make(map[string]*models.User),
		services:      make(map[string]*models.Service),
		notifications: make(map[string]*models.Notification),
	}
}

// PutWorker inserts or replaces a worker
func (s *Store) PutWorker(w *models.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers[w.ID] = w.Clone()
}

// PutUser inserts or replaces a customer
func (s *Store) PutUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
}

// PutService inserts or replaces a catalogue service
func (s *Store) PutService(svc *models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *svc
	s.services[svc.ID] = &c
}

// GetService returns a copy of a catalogue service
func (s *Store) GetService(_ context.Context, id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, booking.ErrNotFound)
	}
	c := *svc
	return &c, nil
}

// Bookings

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; ok {
		return fmt.Errorf("booking %s already exists: %w", b.ID, booking.ErrConflict)
	}
	s.bookings[b.ID] = b.Clone()
	return nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	return b.Clone(), nil
}

func (s *Store) ListUserBookings(_ context.Context, userID string, status models.BookingStatus) ([]*models.Booking, error) {
	return s.listBookings(func(b *models.Booking) bool {
		return b.UserID == userID && (status == "" || b.Status == status)
	}), nil
}

func (s *Store) ListWorkerBookings(_ context.Context, workerID string, status models.BookingStatus) ([]*models.Booking, error) {
	return s.listBookings(func(b *models.Booking) bool {
		return b.WorkerID == workerID && (status == "" || b.Status == status)
	}), nil
}

func (s *Store) listBookings(match func(*models.Booking) bool) []*models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Booking{}
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func bookingNotFound(id string) error {
	return fmt.Errorf("booking %s: %w", id, booking.ErrNotFound)
}

func hasStatus(b *models.Booking, statuses []models.BookingStatus) bool {
	for _, st := range statuses {
		if b.Status == st {
			return true
		}
	}
	return false
}

func (s *Store) AcceptBooking(_ context.Context, id, workerID string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if b.Status != models.BookingStatusPending && !(b.Status == models.BookingStatusAccepted && !b.HasWorker()) {
		if b.HasWorker() && b.Status != models.BookingStatusCancelled {
			return nil, booking.ErrAcceptRaceLost
		}
		return nil, fmt.Errorf("accept from %s: %w", b.Status, booking.ErrIllegalTransition)
	}
	b.WorkerID = workerID
	b.Status = models.BookingStatusAccepted
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) ReleaseBooking(_ context.Context, id, workerID string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if b.Status != models.BookingStatusAccepted || b.WorkerID != workerID {
		return nil, fmt.Errorf("release from %s: %w", b.Status, booking.ErrIllegalTransition)
	}
	b.WorkerID = ""
	b.Status = models.BookingStatusPending
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) TransitionStatus(_ context.Context, id, workerID string, from []models.BookingStatus, to models.BookingStatus, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if !hasStatus(b, from) || b.WorkerID != workerID {
		return nil, fmt.Errorf("%s to %s: %w", b.Status, to, booking.ErrIllegalTransition)
	}
	b.Status = to
	b.UpdatedAt = now
	if to == models.BookingStatusCompleted {
		b.CompletedAt = models.TimePtr(now)
	}
	return b.Clone(), nil
}

func (s *Store) CancelBooking(_ context.Context, id, reason string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if !hasStatus(b, models.SourcesFor(models.BookingStatusCancelled)) {
		return nil, fmt.Errorf("cancel from %s: %w", b.Status, booking.ErrIllegalTransition)
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = models.TimePtr(now)
	b.CancellationReason = reason
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) DeleteBooking(_ context.Context, id string, allowed []models.BookingStatus) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if !hasStatus(b, allowed) {
		return nil, fmt.Errorf("delete in %s: %w", b.Status, booking.ErrIllegalTransition)
	}
	delete(s.bookings, id)
	return b.Clone(), nil
}

func (s *Store) SetReview(_ context.Context, id string, rating int, review string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("review in %s: %w", b.Status, booking.ErrIllegalTransition)
	}
	if b.Rating != nil {
		return nil, booking.ErrAlreadyReviewed
	}
	b.Rating = &rating
	b.Review = review
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) ConfirmPayment(_ context.Context, id string, party models.PaymentParty, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("payment in %s: %w", b.Status, booking.ErrIllegalTransition)
	}

	flag := &b.UserConfirmedPayment
	if party == models.PaymentPartyWorker {
		flag = &b.WorkerConfirmedPayment
	}
	if *flag {
		return nil, booking.ErrAlreadyConfirmed
	}
	*flag = true
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) SettlePayment(_ context.Context, id string, now time.Time) (*models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, false, bookingNotFound(id)
	}
	if b.PaymentStatus != models.PaymentStatusPending || !b.UserConfirmedPayment || !b.WorkerConfirmedPayment {
		return b.Clone(), false, nil
	}
	b.PaymentStatus = models.PaymentStatusPaid
	b.PaymentConfirmedAt = models.TimePtr(now)
	b.UpdatedAt = now
	return b.Clone(), true, nil
}

func (s *Store) CompleteOnlinePayment(_ context.Context, id, paymentID string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingNotFound(id)
	}
	switch {
	case b.Status != models.BookingStatusCompleted:
		return nil, fmt.Errorf("payment in %s: %w", b.Status, booking.ErrIllegalTransition)
	case b.PaymentMethod != models.PaymentMethodOnline:
		return nil, booking.Validationf("booking is not paid online")
	case b.PaymentStatus != models.PaymentStatusPending:
		return nil, booking.ErrAlreadyConfirmed
	}
	b.UserConfirmedPayment = true
	b.WorkerConfirmedPayment = true
	b.PaymentStatus = models.PaymentStatusPaid
	b.PaymentConfirmedAt = models.TimePtr(now)
	if paymentID != "" {
		b.PaymentID = paymentID
	}
	b.UpdatedAt = now
	return b.Clone(), nil
}

func (s *Store) WorkerBookingStats(_ context.Context, workerID string) (*models.WorkerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.WorkerStats{}
	var ratingSum int
	for _, b := range s.bookings {
		if b.WorkerID != workerID || b.Status != models.BookingStatusCompleted {
			continue
		}
		stats.CompletedJobs++
		if b.Rating != nil {
			stats.TotalReviews++
			ratingSum += *b.Rating
		}
		if b.PaymentStatus == models.PaymentStatusPaid {
			stats.TotalEarnings += b.SettlementAmount()
		}
	}
	if stats.TotalReviews > 0 {
		stats.Rating = float64(ratingSum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (s *Store) ServiceRating(_ context.Context, serviceID string) (*models.RatingAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := &models.RatingAggregate{}
	var sum int
	for _, b := range s.bookings {
		if b.ServiceID == serviceID && b.Rating != nil {
			agg.Count++
			sum += *b.Rating
		}
	}
	if agg.Count > 0 {
		agg.Average = float64(sum) / float64(agg.Count)
	}
	return agg, nil
}

// Workers

func workerNotFound(id string) error {
	return fmt.Errorf("worker %s: %w", id, booking.ErrNotFound)
}

func (s *Store) GetWorker(_ context.Context, id string) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[id]
	if !ok {
		return nil, workerNotFound(id)
	}
	return w.Clone(), nil
}

func (s *Store) ListCandidateWorkers(_ context.Context, categories []string, limit int) ([]*models.Worker, error) {
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Worker{}
	for _, w := range s.workers {
		if !w.IsActive || w.Status != models.WorkerStatusAvailable {
			continue
		}
		for _, c := range w.ServiceCategories {
			if _, ok := wanted[strings.ToLower(strings.TrimSpace(c))]; ok {
				out = append(out, w.Clone())
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ClaimWorker(_ context.Context, workerID, bookingID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return workerNotFound(workerID)
	}
	if !w.IsActive || (w.Status == models.WorkerStatusBusy && w.CurrentBookingID != bookingID) {
		return booking.ErrWorkerBusy
	}
	w.Status = models.WorkerStatusBusy
	w.CurrentBookingID = bookingID
	w.UpdatedAt = now
	return nil
}

func (s *Store) ReleaseWorker(_ context.Context, workerID, bookingID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return workerNotFound(workerID)
	}
	if w.CurrentBookingID != bookingID && w.CurrentBookingID != "" {
		return nil
	}
	w.Status = models.WorkerStatusAvailable
	w.CurrentBookingID = ""
	w.UpdatedAt = now
	return nil
}

func (s *Store) UpdateWorkerStats(_ context.Context, workerID string, stats *models.WorkerStats, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return workerNotFound(workerID)
	}
	w.CompletedJobs = stats.CompletedJobs
	w.Rating = stats.Rating
	w.TotalReviews = stats.TotalReviews
	w.Badge = stats.Badge
	w.RankScore = stats.RankScore
	w.UpdatedAt = now
	return nil
}

func (s *Store) AddWorkerRewards(_ context.Context, workerID string, points int, earnings float64, now time.Time) (int, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return 0, 0, workerNotFound(workerID)
	}
	w.RewardPoints += points
	w.TotalEarnings += earnings
	w.UpdatedAt = now
	return w.RewardPoints, w.TotalEarnings, nil
}

func (s *Store) UpdateWorkerLocation(_ context.Context, workerID string, c models.Coordinates, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return workerNotFound(workerID)
	}
	w.CurrentLocation = &c
	w.UpdatedAt = now
	return nil
}

func (s *Store) SetWorkerActive(_ context.Context, workerID string, active bool, now time.Time) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[workerID]
	if !ok {
		return nil, workerNotFound(workerID)
	}
	w.IsActive = active
	w.UpdatedAt = now
	return w.Clone(), nil
}

// Users and services

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, booking.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (s *Store) AddRewardPoints(_ context.Context, userID string, delta int, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return 0, fmt.Errorf("user %s: %w", userID, booking.ErrNotFound)
	}
	u.RewardPoints += delta
	u.UpdatedAt = now
	return u.RewardPoints, nil
}

func (s *Store) UpdateServiceRating(_ context.Context, serviceID string, agg *models.RatingAggregate, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[serviceID]
	if !ok {
		return fmt.Errorf("service %s: %w", serviceID, booking.ErrNotFound)
	}
	svc.Rating = agg.Average
	svc.ReviewCount = agg.Count
	svc.UpdatedAt = now
	return nil
}

// Notifications

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	s.notifications[n.ID] = &c
	return nil
}

func (s *Store) ListNotifications(_ context.Context, userID string, filter models.NotificationListFilter) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range s.notifications {
		if n.UserID != userID || (filter.UnreadOnly && n.IsRead) {
			continue
		}
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification %s: %w", id, booking.ErrNotFound)
	}
	n.IsRead = true
	return nil
}

func (s *Store) MarkAllNotificationsRead(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, rec := range s.notifications {
		if rec.UserID == userID && !rec.IsRead {
			rec.IsRead = true
			n++
		}
	}
	return n, nil
}

var (
	_ booking.BookingRepo      = (*Store)(nil)
	_ booking.WorkerRepo       = (*Store)(nil)
	_ booking.UserRepo         = (*Store)(nil)
	_ booking.ServiceRepo      = (*Store)(nil)
	_ booking.NotificationRepo = (*Store)(nil)
)
