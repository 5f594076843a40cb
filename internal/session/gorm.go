package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"silant-servicebook-web/internal/model"
)

// GormStore persists sessions in the `sessions` table so logins survive restarts.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	return &GormStore{db: db, ttl: ttl, now: time.Now}
}

func (s *GormStore) Create(ctx context.Context, creds Credentials) (string, error) {
	now := s.now().UTC()
	row := model.Session{
		ID:        newID(),
		Token:     creds.Token,
		Username:  creds.Username,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return row.ID, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (Credentials, error) {
	var row model.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now().UTC()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load session: %w", err)
	}
	return Credentials{Token: row.Token, Username: row.Username}, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Sweep removes every session that expired at or before now.
func (s *GormStore) Sweep(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
