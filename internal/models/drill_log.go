package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
)

// DrillLog records one completed practice drill and how it felt (1-5).
type DrillLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConstraintKey string    `gorm:"not null;index" json:"constraint_key"`
	DrillName     string    `gorm:"not null" json:"drill_name"`
	Outcome       int       `gorm:"not null" json:"outcome"`
	Notes         string    `json:"notes"`
	CompletedAt   time.Time `gorm:"index" json:"completed_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (DrillLog) TableName() string {
	return "drill_logs"
}

func (d *DrillLog) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ToAnalytics converts the stored log for the rule engine.
func (d DrillLog) ToAnalytics() analytics.DrillLog {
	return analytics.DrillLog{
		ConstraintKey: analytics.ConstraintKey(d.ConstraintKey),
		DrillName:     d.DrillName,
		CompletedAt:   d.CompletedAt,
		Outcome:       d.Outcome,
	}
}
