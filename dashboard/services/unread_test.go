package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChecker struct {
	connected map[string]bool
	unread    map[string]int
	failFor   map[string]bool
}

func (f *fakeChecker) IsUserConnected(_ context.Context, userID string) bool {
	return f.connected[userID]
}

func (f *fakeChecker) GetUnreadEmails(_ context.Context, userID string, _, _ int) ([]interface{}, error) {
	if f.failFor[userID] {
		return nil, errors.New("server fault")
	}
	messages := make([]interface{}, f.unread[userID])
	return messages, nil
}

type fakeUsers struct {
	users []string
	err   error
}

func (f *fakeUsers) ListUsers(context.Context) ([]string, error) {
	return f.users, f.err
}

func TestRefreshAll(t *testing.T) {
	checker := &fakeChecker{
		connected: map[string]bool{"alice": true, "bob": true, "carol": false, "dave": true},
		unread:    map[string]int{"alice": 3, "bob": 0},
		failFor:   map[string]bool{"dave": true},
	}
	users := &fakeUsers{users: []string{"alice", "bob", "carol", "dave"}}

	svc := NewUnreadService(checker, users, 2, zap.NewNop())
	counts, metrics, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"alice": 3, "bob": 0}, counts)
	assert.Equal(t, 2, metrics.UsersSucceeded)
	assert.Equal(t, 1, metrics.UsersFailed)
	assert.Equal(t, 1, metrics.UsersSkipped)
	assert.Equal(t, 4, metrics.Total())
	assert.NotZero(t, metrics.RefreshID)
}

func TestRefreshAllListFailure(t *testing.T) {
	users := &fakeUsers{err: errors.New("store unavailable")}
	svc := NewUnreadService(&fakeChecker{}, users, 0, zap.NewNop())

	_, _, err := svc.RefreshAll(context.Background())
	assert.Error(t, err)
}

func TestRefreshAllNoUsers(t *testing.T) {
	svc := NewUnreadService(&fakeChecker{}, &fakeUsers{}, 0, zap.NewNop())
	counts, metrics, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Zero(t, metrics.Total())
}
