package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/models"
	"github.com/jdlevish/Golfcoachr10/pkg/database"
)

// SessionStore is the gorm-backed persistence layer for sessions, shots and
// drill logs. The analytics core never touches it; the analyzer fetches shot
// sets here and hands them over.
type SessionStore struct {
	db *database.DB
}

func NewSessionStore(db *database.DB) *SessionStore {
	return &SessionStore{db: db}
}

// CreateSession persists a session and its shots in one transaction.
func (s *SessionStore) CreateSession(session *models.Session, shots []models.Shot) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Create(session).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create session: %w", err)
	}
	for i := range shots {
		shots[i].SessionID = session.ID
	}
	if len(shots) > 0 {
		if err := tx.CreateInBatches(shots, 200).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create shots: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// GetSession loads session metadata.
func (s *SessionStore) GetSession(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns sessions newest first.
func (s *SessionStore) ListSessions(limit, offset int) ([]models.Session, int64, error) {
	var total int64
	if err := s.db.Model(&models.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	var sessions []models.Session
	err := s.db.Order("imported_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, total, nil
}

// GetSessionShots loads a session's shots in recorded order as analytics
// records.
func (s *SessionStore) GetSessionShots(sessionID uuid.UUID) ([]analytics.ShotRecord, error) {
	var shots []models.Shot
	err := s.db.Where("session_id = ?", sessionID).Order("sequence ASC").Find(&shots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load shots: %w", err)
	}

	records := make([]analytics.ShotRecord, 0, len(shots))
	for _, shot := range shots {
		records = append(records, shot.ToRecord())
	}
	return records, nil
}

// GetBaselineShots loads every shot outside the given session, plus the
// number of sessions they span. This is the raw material for the trend
// baseline.
func (s *SessionStore) GetBaselineShots(excludeSessionID uuid.UUID) ([]analytics.ShotRecord, int, error) {
	var sessionCount int64
	err := s.db.Model(&models.Session{}).Where("id <> ?", excludeSessionID).Count(&sessionCount).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count baseline sessions: %w", err)
	}
	if sessionCount == 0 {
		return nil, 0, nil
	}

	var shots []models.Shot
	err = s.db.Where("session_id <> ?", excludeSessionID).
		Order("created_at ASC, sequence ASC").
		Find(&shots).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load baseline shots: %w", err)
	}

	records := make([]analytics.ShotRecord, 0, len(shots))
	for _, shot := range shots {
		records = append(records, shot.ToRecord())
	}
	return records, int(sessionCount), nil
}

// DeleteSession removes a session and its shots.
func (s *SessionStore) DeleteSession(id uuid.UUID) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Where("session_id = ?", id).Delete(&models.Shot{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete shots: %w", err)
	}
	if err := tx.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return tx.Commit().Error
}

// SessionCount returns the total number of stored sessions.
func (s *SessionStore) SessionCount() (int, error) {
	var count int64
	if err := s.db.Model(&models.Session{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}

// CreateDrillLog persists one drill completion.
func (s *SessionStore) CreateDrillLog(log *models.DrillLog) error {
	if err := s.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create drill log: %w", err)
	}
	return nil
}

// ListDrillLogs returns drill logs newest first, optionally filtered by
// constraint key.
func (s *SessionStore) ListDrillLogs(constraintKey string) ([]models.DrillLog, error) {
	query := s.db.Order("completed_at DESC")
	if constraintKey != "" {
		query = query.Where("constraint_key = ?", constraintKey)
	}
	var logs []models.DrillLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list drill logs: %w", err)
	}
	return logs, nil
}
