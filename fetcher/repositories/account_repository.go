package repositories

import (
	"context"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AccountRepository is the public interface for the snapshot history.
type AccountRepository interface {
	SaveSnapshots(ctx context.Context, accounts []accountfetcher.Account, fetchTime time.Time) error
	GetHistory(ctx context.Context, username string, limit int) ([]models.AccountSnapshot, error)
}

// accountRepository repository structure.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// SaveSnapshots inserts one snapshot per account, all stamped with the same fetch time.
func (ar *accountRepository) SaveSnapshots(ctx context.Context, accounts []accountfetcher.Account, fetchTime time.Time) error {
	if len(accounts) == 0 {
		return nil
	}

	snapshots := make([]models.AccountSnapshot, 0, len(accounts))
	for _, account := range accounts {
		snapshots = append(snapshots, models.AccountSnapshot{
			Username:  account.Username,
			Level:     account.Level,
			Wins:      account.Wins,
			FetchTime: fetchTime.UTC(),
		})
	}

	return ar.db.WithContext(ctx).Create(&snapshots).Error
}

// GetHistory returns the snapshots of a username, newest first.
func (ar *accountRepository) GetHistory(ctx context.Context, username string, limit int) ([]models.AccountSnapshot, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	var snapshots []models.AccountSnapshot
	err := ar.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		Order("fetch_time desc").
		Order("id desc").
		Limit(limit).
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
