package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/services"
	"github.com/jdlevish/Golfcoachr10/pkg/utils"
)

// SessionHandler serves session import and analysis endpoints.
type SessionHandler struct {
	store    *services.SessionStore
	importer *services.Importer
	analyzer *services.Analyzer
	logger   *logrus.Logger
}

func NewSessionHandler(store *services.SessionStore, importer *services.Importer, analyzer *services.Analyzer, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		store:    store,
		importer: importer,
		analyzer: analyzer,
		logger:   logger,
	}
}

// ImportSession accepts a multipart CSV upload and stores it as a session.
func (h *SessionHandler) ImportSession(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "Missing CSV upload", "expected multipart field \"file\"")
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	report, session, err := h.importer.ImportCSV(name, file)
	if err != nil {
		h.logger.WithError(err).Warn("Session import failed")
		utils.SendError(c, 422, utils.NewAppError(utils.ErrCodeImport, "Import failed", err.Error()))
		return
	}

	h.analyzer.Invalidate(c.Request.Context())

	utils.SendCreated(c, gin.H{
		"session": session,
		"report":  report,
	})
}

// ListSessions returns stored sessions, newest first.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit > 100 {
		limit = 100
	}

	sessions, total, err := h.store.ListSessions(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sessions")
		utils.SendInternalError(c, "Failed to list sessions")
		return
	}

	utils.SendSuccessWithMeta(c, sessions, &utils.Meta{
		PerPage: limit,
		Total:   total,
	})
}

// GetAnalysis returns the full analysis document for a session.
func (h *SessionHandler) GetAnalysis(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis)
}

// GetSummary returns only the session summary.
func (h *SessionHandler) GetSummary(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis.Summary)
}

// GetGapping returns only the gapping ladder.
func (h *SessionHandler) GetGapping(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis.Ladder)
}

// GetCoach returns the coaching plan; data is null when the session has no
// clubs with data.
func (h *SessionHandler) GetCoach(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis.Coach)
}

// GetTrends returns the trend deltas against the baseline sessions.
func (h *SessionHandler) GetTrends(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis.Trends)
}

// GetInsights returns the rule-insight findings.
func (h *SessionHandler) GetInsights(c *gin.Context) {
	analysis, ok := h.analyze(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, analysis.Insights)
}

// DeleteSession removes a session and its shots.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid session id", err.Error())
		return
	}
	if _, err := h.store.GetSession(id); err != nil {
		utils.SendNotFound(c, "Session not found")
		return
	}
	if err := h.store.DeleteSession(id); err != nil {
		h.logger.WithError(err).Error("Failed to delete session")
		utils.SendInternalError(c, "Failed to delete session")
		return
	}
	h.analyzer.Invalidate(c.Request.Context())
	utils.SendSuccess(c, gin.H{"deleted": id})
}

// analyze resolves the session id and outlier toggle and runs the pipeline.
func (h *SessionHandler) analyze(c *gin.Context) (*services.SessionAnalysis, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid session id", err.Error())
		return nil, false
	}

	includeOutliers := c.DefaultQuery("include_outliers", "true") == "true"

	analysis, err := h.analyzer.Analyze(c.Request.Context(), id, includeOutliers)
	if err != nil {
		h.logger.WithError(err).WithField("session_id", id).Warn("Analysis failed")
		utils.SendNotFound(c, "Session not found")
		return nil, false
	}
	return analysis, true
}
