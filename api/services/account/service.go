package accountservice

import (
	"context"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"fortstats/pkg/database/models"
)

// AccountFetcher runs live batch lookups.
type AccountFetcher interface {
	FetchAccounts(ctx context.Context, usernames []string) ([]accountfetcher.Account, error)
}

// AccountService serves live lookups and the stored snapshots.
type AccountService struct {
	fetcher    AccountFetcher
	repository repositories.AccountRepository
	cache      repositories.LatestCache
}

// AccountServiceDeps holds the dependencies of the account service.
type AccountServiceDeps struct {
	Fetcher    AccountFetcher
	Repository repositories.AccountRepository
	Cache      repositories.LatestCache
}

// NewAccountService creates a new account service.
func NewAccountService(deps *AccountServiceDeps) *AccountService {
	return &AccountService{
		fetcher:    deps.Fetcher,
		repository: deps.Repository,
		cache:      deps.Cache,
	}
}

// FetchAccounts runs a live batch against the accounts API.
func (s *AccountService) FetchAccounts(ctx context.Context, usernames []string) ([]accountfetcher.Account, error) {
	return s.fetcher.FetchAccounts(ctx, usernames)
}

// GetLatest returns the latest recorded snapshot of a username.
func (s *AccountService) GetLatest(ctx context.Context, username string) (*models.AccountSnapshot, error) {
	return s.cache.GetLatest(ctx, username)
}

// GetHistory returns the recorded snapshots of a username, newest first.
func (s *AccountService) GetHistory(ctx context.Context, username string, limit int) ([]models.AccountSnapshot, error) {
	return s.repository.GetHistory(ctx, username, limit)
}
