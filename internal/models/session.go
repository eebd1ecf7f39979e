package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
)

// Session is one imported practice session.
type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Source     string    `json:"source"`
	ShotCount  int       `json:"shot_count"`
	ImportedAt time.Time `gorm:"index" json:"imported_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Shots []Shot `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"shots,omitempty"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Shot is the persisted shape of an analytics.ShotRecord. Every field of the
// record is stored except the raw row mapping, which is not persisted;
// reloading substitutes an empty map. Quality flags are stored as JSON so the
// same schema runs on both the postgres and sqlite drivers.
type Shot struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SessionID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Sequence    int            `gorm:"not null" json:"sequence"`
	ClubType    string         `gorm:"not null;index" json:"club_type"`
	ClubName    string         `json:"club_name"`
	ClubModel   string         `json:"club_model"`
	DisplayClub string         `json:"display_club"`
	BallSpeed   *float64       `json:"ball_speed"`
	LaunchAngle *float64       `json:"launch_angle"`
	Carry       *float64       `json:"carry_distance"`
	Total       *float64       `json:"total_distance"`
	Side        *float64       `json:"side_distance"`
	SpinRate    *float64       `json:"spin_rate"`
	IsOutlier   bool           `gorm:"default:false" json:"is_outlier"`
	Flags       datatypes.JSON `json:"quality_flags"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Shot) TableName() string {
	return "shots"
}

func (s *Shot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ShotFromRecord converts a normalized shot record for persistence.
func ShotFromRecord(sessionID uuid.UUID, sequence int, rec analytics.ShotRecord) Shot {
	flags, _ := json.Marshal(rec.QualityFlags)
	return Shot{
		SessionID:   sessionID,
		Sequence:    sequence,
		ClubType:    rec.ClubType,
		ClubName:    rec.ClubName,
		ClubModel:   rec.ClubModel,
		DisplayClub: rec.DisplayClub,
		BallSpeed:   rec.BallSpeed,
		LaunchAngle: rec.LaunchAngle,
		Carry:       rec.Carry,
		Total:       rec.Total,
		Side:        rec.Side,
		SpinRate:    rec.SpinRate,
		IsOutlier:   rec.IsOutlier,
		Flags:       datatypes.JSON(flags),
	}
}

// ToRecord reconstructs the analytics record from the stored shape.
func (s Shot) ToRecord() analytics.ShotRecord {
	var flags []string
	if len(s.Flags) > 0 {
		_ = json.Unmarshal(s.Flags, &flags)
	}
	return analytics.ShotRecord{
		ClubType:     s.ClubType,
		ClubName:     s.ClubName,
		ClubModel:    s.ClubModel,
		DisplayClub:  s.DisplayClub,
		BallSpeed:    s.BallSpeed,
		LaunchAngle:  s.LaunchAngle,
		Carry:        s.Carry,
		Total:        s.Total,
		Side:         s.Side,
		SpinRate:     s.SpinRate,
		IsOutlier:    s.IsOutlier,
		QualityFlags: flags,
		Raw:          map[string]string{},
	}
}
