package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/models"
	"github.com/jdlevish/Golfcoachr10/pkg/config"
	"github.com/jdlevish/Golfcoachr10/pkg/database"
)

func main() {
	seed := flag.Bool("seed", false, "seed a demo session after migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Session{}, &models.Shot{}, &models.DrillLog{}); err != nil {
		logrus.Fatalf("Failed to migrate schema: %v", err)
	}
	logrus.Info("Schema migrated")

	if *seed {
		if err := seedDemoSession(db); err != nil {
			logrus.Fatalf("Failed to seed demo session: %v", err)
		}
		logrus.Info("Demo session seeded")
	}
}

// seedDemoSession writes a small session through the same normalizer the
// importer uses, so seeded data matches real imports.
func seedDemoSession(db *database.DB) error {
	engine := analytics.NewEngine(analytics.DefaultThresholds(), logrus.StandardLogger())

	rows := []map[string]string{
		{"Club Type": "7 Iron", "Ball Speed": "112.4", "Carry Distance": "150.2", "Total Distance": "158.1", "Offline": "4.1", "Spin Rate": "6510"},
		{"Club Type": "7 Iron", "Ball Speed": "110.9", "Carry Distance": "147.8", "Total Distance": "155.0", "Offline": "-6.2", "Spin Rate": "6712"},
		{"Club Type": "7 Iron", "Ball Speed": "113.2", "Carry Distance": "152.6", "Total Distance": "160.8", "Offline": "2.5", "Spin Rate": "6390"},
		{"Club Type": "7 Iron", "Ball Speed": "111.7", "Carry Distance": "149.5", "Total Distance": "157.2", "Offline": "-1.8", "Spin Rate": "6605"},
		{"Club Type": "Pitching Wedge", "Ball Speed": "96.3", "Carry Distance": "118.4", "Offline": "3.0", "Spin Rate": "8450"},
		{"Club Type": "Pitching Wedge", "Ball Speed": "95.1", "Carry Distance": "116.2", "Offline": "-2.1", "Spin Rate": "8710"},
		{"Club Type": "Driver", "Ball Speed": "152.8", "Carry Distance": "245.7", "Total Distance": "268.3", "Offline": "12.4", "Spin Rate": "2890"},
		{"Club Type": "Driver", "Ball Speed": "150.2", "Carry Distance": "241.1", "Total Distance": "262.9", "Offline": "-18.6", "Spin Rate": "3120"},
	}

	shots := engine.TagOutliers(engine.NormalizeRows(rows))

	session := &models.Session{
		Name:       "Demo range session",
		Source:     "seed",
		ShotCount:  len(shots),
		ImportedAt: time.Now().UTC(),
	}
	stored := make([]models.Shot, 0, len(shots))
	for seq, shot := range shots {
		stored = append(stored, models.ShotFromRecord(session.ID, seq, shot))
	}

	tx := db.Begin()
	if err := tx.Create(session).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range stored {
		stored[i].SessionID = session.ID
	}
	if err := tx.Create(&stored).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
