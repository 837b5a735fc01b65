package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// MailChecker is the slice of the Zimbra client the refresh needs.
type MailChecker interface {
	IsUserConnected(ctx context.Context, userID string) bool
	GetUnreadEmails(ctx context.Context, userID string, offset, limit int) ([]interface{}, error)
}

// UserLister enumerates the users with stored account state.
type UserLister interface {
	ListUsers(ctx context.Context) ([]string, error)
}

// How many unread messages are fetched per user. The dashboard widget only
// displays a count, so anything at or above this reads as "100+".
const unreadFetchLimit = 100

// RefreshMetrics tracks the outcome of one refresh run
type RefreshMetrics struct {
	RefreshID      uuid.UUID
	UsersSucceeded int
	UsersFailed    int
	UsersSkipped   int
	Duration       time.Duration
	mu             sync.Mutex
}

// AddSuccess increments the succeeded users count
func (m *RefreshMetrics) AddSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersSucceeded++
}

// AddFailure increments the failed users count
func (m *RefreshMetrics) AddFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersFailed++
}

// AddSkipped increments the skipped users count
func (m *RefreshMetrics) AddSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersSkipped++
}

// Total returns the total number of users considered
func (m *RefreshMetrics) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UsersSucceeded + m.UsersFailed + m.UsersSkipped
}

// UnreadService gathers per-user unread-mail counts for the dashboard
// widget. Users without a complete session are skipped rather than failed:
// a user who never connected their account is not an error.
type UnreadService struct {
	client      MailChecker
	users       UserLister
	concurrency int
	logger      *zap.Logger
}

// NewUnreadService creates a new unread-count refresh service
func NewUnreadService(client MailChecker, users UserLister, concurrency int, logger *zap.Logger) *UnreadService {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &UnreadService{
		client:      client,
		users:       users,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RefreshAll fetches the unread count for every stored user, bounded to the
// configured number of concurrent requests. A failing user does not abort
// the run; the failure is logged and counted.
func (s *UnreadService) RefreshAll(ctx context.Context) (map[string]int, *RefreshMetrics, error) {
	startTime := time.Now()
	metrics := &RefreshMetrics{RefreshID: uuid.New()}

	s.logger.Info("Starting unread-count refresh",
		zap.String("refresh_id", metrics.RefreshID.String()))

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, metrics, err
	}

	counts := make(map[string]int, len(users))
	var countsMu sync.Mutex

	p := pool.New().WithMaxGoroutines(s.concurrency)
	for _, userID := range users {
		userID := userID // capture loop variable
		p.Go(func() {
			if !s.client.IsUserConnected(ctx, userID) {
				metrics.AddSkipped()
				s.logger.Debug("Skipping user without a complete session",
					zap.String("user", userID))
				return
			}

			messages, err := s.client.GetUnreadEmails(ctx, userID, 0, unreadFetchLimit)
			if err != nil {
				metrics.AddFailure()
				s.logger.Warn("Failed to fetch unread emails",
					zap.String("user", userID),
					zap.Error(err))
				return
			}

			countsMu.Lock()
			counts[userID] = len(messages)
			countsMu.Unlock()
			metrics.AddSuccess()
		})
	}
	p.Wait()

	metrics.Duration = time.Since(startTime)

	s.logger.Info("Completed unread-count refresh",
		zap.String("refresh_id", metrics.RefreshID.String()),
		zap.Duration("duration", metrics.Duration),
		zap.Int("users_succeeded", metrics.UsersSucceeded),
		zap.Int("users_failed", metrics.UsersFailed),
		zap.Int("users_skipped", metrics.UsersSkipped))

	return counts, metrics, nil
}
