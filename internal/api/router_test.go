package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/models"
	"github.com/jdlevish/Golfcoachr10/internal/services"
	"github.com/jdlevish/Golfcoachr10/pkg/database"
)

const testCSV = `Club Type,Club Name,Ball Speed (mph),Carry Distance (yds),Offline Distance
7 Iron,My 7i,112.3,150,-4.2
7 Iron,My 7i,113.0,152,3.1
7 Iron,My 7i,118.0,300,10.0
7 Iron,My 7i,111.5,148,-2.0
Pitching Wedge,,98.0,115,1.5
Pitching Wedge,,97.5,112,-0.5
Driver,,160.2,248,-12.0
Driver,,161.0,252,8.0
`

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewConnection(dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Shot{}, &models.DrillLog{}))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	engine := analytics.NewEngine(analytics.DefaultThresholds(), log)
	store := services.NewSessionStore(db)
	importer := services.NewImporter(store, engine, log, 1000)
	analyzer := services.NewAnalyzer(store, nil, engine, log, time.Minute)

	router := gin.New()
	SetupRoutes(router.Group("/api/v1"), store, importer, analyzer, log)
	return router
}

func uploadCSV(t *testing.T, router *gin.Engine, name, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func importedSessionID(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := uploadCSV(t, router, "range.csv", testCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
		Report services.ImportReport `json:"report"`
	}
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.Session.ID)
	return payload.Session.ID
}

func TestImportEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := uploadCSV(t, router, "range.csv", testCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload struct {
		Report services.ImportReport `json:"report"`
	}
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 8, payload.Report.RowsRead)
	assert.Equal(t, 8, payload.Report.ShotsKept)
	assert.Equal(t, 1, payload.Report.OutliersFlagged)
}

func TestImportEndpointRejectsMissingFile(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/import", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportEndpointRejectsUnusableCSV(t *testing.T) {
	router := setupTestRouter(t)

	w := uploadCSV(t, router, "notes.csv", "Notes\nwarm up\n")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnalysisEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	sessionID := importedSessionID(t, router)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Summary", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/summary")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var summary analytics.SessionSummary
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &summary))
		assert.Equal(t, 8, summary.ShotCount)
		assert.Len(t, summary.Clubs, 3)
	})

	t.Run("Summary excluding outliers", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/summary?include_outliers=false")
		require.Equal(t, http.StatusOK, w.Code)

		var summary analytics.SessionSummary
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &summary))
		assert.Equal(t, 7, summary.ShotCount)
	})

	t.Run("Gapping", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/gapping")
		require.Equal(t, http.StatusOK, w.Code)

		var ladder analytics.GappingLadder
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &ladder))
		assert.Len(t, ladder.Rows, 3)
		assert.NotEmpty(t, ladder.Insights)
	})

	t.Run("Coach", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/coach")
		require.Equal(t, http.StatusOK, w.Code)

		var plan analytics.CoachPlan
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &plan))
		assert.Len(t, plan.Constraints, 4)
		assert.Len(t, plan.Plan.Steps, 3)
	})

	t.Run("Trends", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/trends")
		require.Equal(t, http.StatusOK, w.Code)

		var trends analytics.TrendDeltas
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &trends))
		assert.False(t, trends.HasBaseline)
	})

	t.Run("Insights", func(t *testing.T) {
		w := get("/api/v1/sessions/" + sessionID + "/insights")
		require.Equal(t, http.StatusOK, w.Code)

		var insights []analytics.RuleInsight
		env := decodeEnvelope(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &insights))
		assert.NotEmpty(t, insights)
	})

	t.Run("Invalid session id", func(t *testing.T) {
		w := get("/api/v1/sessions/not-a-uuid/analysis")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown session", func(t *testing.T) {
		w := get("/api/v1/sessions/00000000-0000-0000-0000-000000000001/analysis")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDrillLogEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/drills", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Create and list", func(t *testing.T) {
		w := post(`{"constraint_key":"direction_consistency","drill_name":"Gate drill","outcome":4}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/drills?constraint_key=direction_consistency", nil)
		lw := httptest.NewRecorder()
		router.ServeHTTP(lw, req)
		require.Equal(t, http.StatusOK, lw.Code)

		var logs []models.DrillLog
		env := decodeEnvelope(t, lw)
		require.NoError(t, json.Unmarshal(env.Data, &logs))
		assert.Len(t, logs, 1)
		assert.Equal(t, "Gate drill", logs[0].DrillName)
	})

	t.Run("Outcome out of range", func(t *testing.T) {
		w := post(`{"constraint_key":"direction_consistency","drill_name":"Gate drill","outcome":6}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown constraint key", func(t *testing.T) {
		w := post(`{"constraint_key":"putting","drill_name":"Gate drill","outcome":3}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteSessionEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	sessionID := importedSessionID(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/summary", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
