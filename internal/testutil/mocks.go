package testutil

import (
	"context"
	"fmt"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/pkg/database/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockReporter records the rendered diagnostics.
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Errorf(format string, args ...any) {
	m.Called(fmt.Sprintf(format, args...))
}

// RecordingReporter keeps every rendered diagnostic, for tests that only count them.
type RecordingReporter struct {
	mu    sync.Mutex
	Lines []string
}

func (r *RecordingReporter) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// MockAccountRepository mocks the snapshot history storage.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveSnapshots(ctx context.Context, accounts []accountfetcher.Account, fetchTime time.Time) error {
	args := m.Called(ctx, accounts, fetchTime)
	return args.Error(0)
}

func (m *MockAccountRepository) GetHistory(ctx context.Context, username string, limit int) ([]models.AccountSnapshot, error) {
	args := m.Called(ctx, username, limit)
	return args.Get(0).([]models.AccountSnapshot), args.Error(1)
}

// MockRedisClient mocks the key value operations used by the latest snapshot cache.
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// MockAccountFetcher mocks the live batch lookups.
type MockAccountFetcher struct {
	mock.Mock
}

func (m *MockAccountFetcher) FetchAccounts(ctx context.Context, usernames []string) ([]accountfetcher.Account, error) {
	args := m.Called(ctx, usernames)
	return args.Get(0).([]accountfetcher.Account), args.Error(1)
}
