package repositories

import (
	"context"
	"errors"
	"fortstats/internal/testutil"
	"fortstats/pkg/database/models"
	"fortstats/pkg/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestKey(t *testing.T) {
	assert.Equal(t, "account:latest:user1", LatestKey("User1"))
	assert.Equal(t, LatestKey("NINJA"), LatestKey("ninja"))
}

func TestSetLatest(t *testing.T) {
	mockRedis := new(testutil.MockRedisClient)
	cache := NewLatestCache(mockRedis, time.Hour)
	ctx := context.Background()

	snapshot := models.AccountSnapshot{Username: "User1", Level: 10, Wins: 5, FetchTime: fixedDate}
	mockRedis.On("Set", ctx, "account:latest:user1",
		`{"username":"User1","level":10,"wins":5,"fetchTime":"2024-01-15T10:00:00Z"}`, time.Hour).
		Return(nil).Once()

	require.NoError(t, cache.SetLatest(ctx, snapshot))
	testutil.VerifyAllMocks(t, mockRedis)
}

func TestGetLatest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		cached        string
		redisErr      error
		expected      *models.AccountSnapshot
		expectedError error
		errorContains string
	}{
		{
			name:     "hit",
			cached:   `{"username":"user1","level":10,"wins":5,"fetchTime":"2024-01-15T10:00:00Z"}`,
			expected: &models.AccountSnapshot{Username: "user1", Level: 10, Wins: 5, FetchTime: fixedDate},
		},
		{
			name:          "miss",
			redisErr:      redis.Nil,
			expectedError: ErrSnapshotNotFound,
		},
		{
			name:          "redis down",
			redisErr:      errors.New("connection refused"),
			errorContains: "connection refused",
		},
		{
			name:          "corrupted value",
			cached:        `{"username":`,
			errorContains: "couldn't unmarshal cached snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRedis := new(testutil.MockRedisClient)
			mockRedis.On("Get", ctx, "account:latest:user1").Return(tt.cached, tt.redisErr).Once()

			cache := NewLatestCache(mockRedis, time.Hour)
			snapshot, err := cache.GetLatest(ctx, "user1")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, snapshot)
			case tt.errorContains != "":
				assert.ErrorContains(t, err, tt.errorContains)
				assert.Nil(t, snapshot)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected.Username, snapshot.Username)
				assert.Equal(t, tt.expected.Level, snapshot.Level)
				assert.Equal(t, tt.expected.Wins, snapshot.Wins)
				assert.True(t, tt.expected.FetchTime.Equal(snapshot.FetchTime))
			}

			testutil.VerifyAllMocks(t, mockRedis)
		})
	}
}
