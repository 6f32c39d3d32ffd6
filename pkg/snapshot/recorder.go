package snapshot

import (
	"context"
	"fmt"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"fortstats/pkg/database/models"
	"time"
)

// Recorder stores the results of a batch on the history and the latest cache.
type Recorder struct {
	repository repositories.AccountRepository
	cache      repositories.LatestCache
	now        func() time.Time
}

// NewRecorder creates a recorder.
func NewRecorder(repository repositories.AccountRepository, cache repositories.LatestCache) *Recorder {
	return &Recorder{
		repository: repository,
		cache:      cache,
		now:        time.Now,
	}
}

// Record saves the accounts, all stamped with the same fetch time.
func (r *Recorder) Record(ctx context.Context, accounts []accountfetcher.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	fetchTime := r.now().UTC()
	if err := r.repository.SaveSnapshots(ctx, accounts, fetchTime); err != nil {
		return fmt.Errorf("couldn't save snapshots: %w", err)
	}

	for _, account := range accounts {
		err := r.cache.SetLatest(ctx, models.AccountSnapshot{
			Username:  account.Username,
			Level:     account.Level,
			Wins:      account.Wins,
			FetchTime: fetchTime,
		})
		if err != nil {
			return fmt.Errorf("couldn't cache latest snapshot of %s: %w", account.Username, err)
		}
	}

	return nil
}
