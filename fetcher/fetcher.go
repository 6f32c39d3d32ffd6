package main

import (
	"context"
	"errors"
	"fmt"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"fortstats/pkg/config"
	"fortstats/pkg/database"
	"fortstats/pkg/logger"
	"fortstats/pkg/redis"
	"fortstats/pkg/snapshot"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

type fetchOptions struct {
	baseURL   string
	persist   bool
	uploadLog string
}

func newRootCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:           "fetcher <username>...",
		Short:         "Fetch account statistics for a list of usernames",
		Long:          "Looks up every username on the accounts API, in order, printing the resolved accounts. Failed lookups are reported and skipped.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "accounts API base URL (default: ACCOUNTS_API_URL or the public endpoint)")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "record the fetched accounts on Postgres and Redis")
	cmd.Flags().StringVar(&opts.uploadLog, "upload-log", "", "upload the diagnostic log to the log bucket under this key")

	return cmd
}

func runFetch(cmd *cobra.Command, usernames []string, opts *fetchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseURL := cfg.Api.AccountsURL
	if opts.baseURL != "" {
		baseURL = opts.baseURL
	}

	out := cmd.OutOrStdout()
	log := logger.New(out)
	if opts.uploadLog != "" {
		if log, err = logger.NewFileLogger(out); err != nil {
			return fmt.Errorf("couldn't create the log file: %w", err)
		}
		defer log.Close()
	}

	runErr := fetchAndRecord(ctx, cfg, log, out, baseURL, usernames, opts.persist)

	// The log is shipped even when the run failed.
	if opts.uploadLog != "" {
		if err := uploadLog(ctx, log, cfg.Bucket, opts.uploadLog); err != nil {
			return errors.Join(runErr, err)
		}
	}

	return runErr
}

// fetchAndRecord runs the batch, prints it and records it when asked to.
func fetchAndRecord(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer, baseURL string, usernames []string, persist bool) error {
	fetcher := accountfetcher.NewAccountFetcher(baseURL, nil, log)
	accounts, err := fetcher.FetchAccounts(ctx, usernames)
	if err != nil {
		log.Errorf("fetch failed: %v", err)
		return err
	}

	printAccounts(out, accounts)

	if persist {
		if err := persistAccounts(ctx, cfg, accounts); err != nil {
			log.Errorf("couldn't record the accounts: %v", err)
			return err
		}
		log.Infof("recorded %d accounts", len(accounts))
	}

	return nil
}

// uploadLog ships the diagnostic log, a failed upload drops the file contents.
func uploadLog(ctx context.Context, log *logger.Logger, bucket config.BucketConfiguration, key string) error {
	if err := log.UploadToS3Bucket(ctx, bucket, key); err != nil {
		log.CleanFile()
		return err
	}
	return nil
}

// printAccounts writes one line per resolved account.
func printAccounts(w io.Writer, accounts []accountfetcher.Account) {
	for _, account := range accounts {
		fmt.Fprintf(w, "Username: %s, Level: %d, Wins: %d\n", account.Username, account.Level, account.Wins)
	}
}

// persistAccounts records the accounts with short lived connections.
func persistAccounts(ctx context.Context, cfg *config.Config, accounts []accountfetcher.Account) error {
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

	recorder := snapshot.NewRecorder(
		repositories.NewAccountRepository(db),
		repositories.NewLatestCache(redisClient, cfg.Redis.SnapshotTTL),
	)
	return recorder.Record(ctx, accounts)
}
