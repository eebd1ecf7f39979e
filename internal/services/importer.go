package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/models"
)

// ImportReport is the import-diagnostics summary returned alongside a newly
// stored session.
type ImportReport struct {
	RowsRead        int `json:"rows_read"`
	ShotsKept       int `json:"shots_kept"`
	RowsDropped     int `json:"rows_dropped"`
	OutliersFlagged int `json:"outliers_flagged"`
	QualityFlagged  int `json:"quality_flagged"`
}

// Importer turns an uploaded launch-monitor CSV into a stored session. The
// CSV handling lives here, at the boundary; the analytics core only ever
// sees header-to-value maps.
type Importer struct {
	store   *SessionStore
	engine  *analytics.Engine
	logger  *logrus.Logger
	maxRows int
}

func NewImporter(store *SessionStore, engine *analytics.Engine, logger *logrus.Logger, maxRows int) *Importer {
	return &Importer{
		store:   store,
		engine:  engine,
		logger:  logger,
		maxRows: maxRows,
	}
}

// ImportCSV reads the CSV, normalizes and outlier-tags the rows, and
// persists the session. Malformed numeric cells degrade to missing values
// rather than failing the import; only structural problems (no header, no
// usable rows) are errors.
func (i *Importer) ImportCSV(name string, r io.Reader) (*ImportReport, *models.Session, error) {
	rows, err := i.readRows(r)
	if err != nil {
		return nil, nil, err
	}

	shots := i.engine.NormalizeRows(rows)
	if len(shots) == 0 {
		return nil, nil, fmt.Errorf("no usable shots in %q: every row lacked both club identity and measurements", name)
	}
	tagged := i.engine.TagOutliers(shots)

	report := &ImportReport{
		RowsRead:    len(rows),
		ShotsKept:   len(tagged),
		RowsDropped: len(rows) - len(tagged),
	}
	for _, shot := range tagged {
		if shot.IsOutlier {
			report.OutliersFlagged++
		}
		if len(shot.QualityFlags) > 0 {
			report.QualityFlagged++
		}
	}

	session := &models.Session{
		Name:       name,
		Source:     "csv",
		ShotCount:  len(tagged),
		ImportedAt: time.Now().UTC(),
	}
	stored := make([]models.Shot, 0, len(tagged))
	for seq, shot := range tagged {
		stored = append(stored, models.ShotFromRecord(session.ID, seq, shot))
	}
	if err := i.store.CreateSession(session, stored); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	i.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"rows_read":  report.RowsRead,
		"shots_kept": report.ShotsKept,
		"outliers":   report.OutliersFlagged,
	}).Info("Imported session")

	return report, session, nil
}

// readRows converts the CSV stream into header-to-value maps. Short records
// are tolerated; completely empty lines are skipped.
func (i *Importer) readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if i.maxRows > 0 && len(rows) >= i.maxRows {
			return nil, fmt.Errorf("import exceeds the %d row limit", i.maxRows)
		}

		row := make(map[string]string, len(header))
		empty := true
		for col, key := range header {
			if col >= len(record) {
				break
			}
			row[key] = record[col]
			if record[col] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
