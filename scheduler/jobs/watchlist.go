package jobs

import (
	"context"
	"fmt"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"fortstats/pkg/config"
	"fortstats/pkg/database"
	"fortstats/pkg/logger"
	"fortstats/pkg/redis"
	"fortstats/pkg/snapshot"
	"log"
	"os"
	"time"
)

// Fetcher runs a batch lookup.
type Fetcher interface {
	FetchAccounts(ctx context.Context, usernames []string) ([]accountfetcher.Account, error)
}

// Recorder stores the results of a batch.
type Recorder interface {
	Record(ctx context.Context, accounts []accountfetcher.Account) error
}

// FetchWatchlist fetches the configured watch list and records the results.
func FetchWatchlist(cfg *config.Config) error {
	log.Println("Starting watch list fetch")
	ctx := context.Background()

	runLog, err := logger.NewFileLogger(os.Stdout)
	if err != nil {
		return fmt.Errorf("couldn't create the run log: %w", err)
	}
	defer runLog.Close()

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer database.Close(db)

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("couldn't get redis connection: %w", err)
	}
	defer redisClient.Close()

	fetcher := accountfetcher.NewAccountFetcher(cfg.Api.AccountsURL, nil, runLog)
	recorder := snapshot.NewRecorder(
		repositories.NewAccountRepository(db),
		repositories.NewLatestCache(redisClient, cfg.Redis.SnapshotTTL),
	)

	runErr := runWatchlist(ctx, fetcher, recorder, runLog, cfg.Scheduler.Usernames)
	if runErr != nil {
		log.Printf("Error fetching watch list: %v", runErr)
	}

	// Ship the run log whatever the outcome.
	if key, err := uploadRunLog(ctx, runLog, cfg.Bucket, time.Now()); err != nil {
		log.Printf("Error uploading run log: %v", err)
	} else if key != "" {
		log.Printf("Run log uploaded to %s", key)
	}

	if runErr != nil {
		return runErr
	}

	log.Println("Watch list fetch completed successfully")
	return nil
}

// uploadRunLog uploads the run log to logs/watchlist-<timestamp>.log and returns the key.
// Nothing is uploaded when no log bucket is configured. A failed upload drops the file
// contents so the next run starts clean.
func uploadRunLog(ctx context.Context, runLog *logger.Logger, bucket config.BucketConfiguration, now time.Time) (string, error) {
	if bucket.LogBucket == "" {
		return "", nil
	}

	key := fmt.Sprintf("logs/watchlist-%s.log", now.UTC().Format("20060102T150405Z"))
	if err := runLog.UploadToS3Bucket(ctx, bucket, key); err != nil {
		runLog.CleanFile()
		return "", err
	}

	return key, nil
}

// runWatchlist fetches and records a single watch list run.
func runWatchlist(ctx context.Context, fetcher Fetcher, recorder Recorder, runLog *logger.Logger, usernames []string) error {
	accounts, err := fetcher.FetchAccounts(ctx, usernames)
	if err != nil {
		runLog.Errorf("watch list fetch failed: %v", err)
		return err
	}

	runLog.Infof("fetched %d of %d accounts", len(accounts), len(usernames))

	if err := recorder.Record(ctx, accounts); err != nil {
		runLog.Errorf("couldn't record the watch list: %v", err)
		return err
	}

	return nil
}
