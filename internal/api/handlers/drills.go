package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/models"
	"github.com/jdlevish/Golfcoachr10/internal/services"
	"github.com/jdlevish/Golfcoachr10/pkg/utils"
)

// DrillLogHandler serves drill-completion logging, the input to the
// drill-memory rule.
type DrillLogHandler struct {
	store    *services.SessionStore
	analyzer *services.Analyzer
	logger   *logrus.Logger
}

func NewDrillLogHandler(store *services.SessionStore, analyzer *services.Analyzer, logger *logrus.Logger) *DrillLogHandler {
	return &DrillLogHandler{
		store:    store,
		analyzer: analyzer,
		logger:   logger,
	}
}

type createDrillLogRequest struct {
	ConstraintKey string     `json:"constraint_key" binding:"required"`
	DrillName     string     `json:"drill_name" binding:"required"`
	Outcome       int        `json:"outcome" binding:"required,min=1,max=5"`
	Notes         string     `json:"notes"`
	CompletedAt   *time.Time `json:"completed_at"`
}

var validConstraintKeys = map[string]bool{
	string(analytics.ConstraintDirection): true,
	string(analytics.ConstraintDistance):  true,
	string(analytics.ConstraintGapping):   true,
	string(analytics.ConstraintStrike):    true,
}

// CreateDrillLog records one completed drill and its perceived outcome.
func (h *DrillLogHandler) CreateDrillLog(c *gin.Context) {
	var req createDrillLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid drill log", err.Error())
		return
	}
	if !validConstraintKeys[req.ConstraintKey] {
		utils.SendValidationError(c, "Unknown constraint key", req.ConstraintKey)
		return
	}

	completedAt := time.Now().UTC()
	if req.CompletedAt != nil {
		completedAt = req.CompletedAt.UTC()
	}

	log := &models.DrillLog{
		ConstraintKey: req.ConstraintKey,
		DrillName:     req.DrillName,
		Outcome:       req.Outcome,
		Notes:         req.Notes,
		CompletedAt:   completedAt,
	}
	if err := h.store.CreateDrillLog(log); err != nil {
		h.logger.WithError(err).Error("Failed to create drill log")
		utils.SendInternalError(c, "Failed to create drill log")
		return
	}

	h.analyzer.Invalidate(c.Request.Context())
	utils.SendCreated(c, log)
}

// ListDrillLogs returns drill logs, optionally filtered by constraint key.
func (h *DrillLogHandler) ListDrillLogs(c *gin.Context) {
	key := c.Query("constraint_key")
	if key != "" && !validConstraintKeys[key] {
		utils.SendValidationError(c, "Unknown constraint key", key)
		return
	}

	logs, err := h.store.ListDrillLogs(key)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list drill logs")
		utils.SendInternalError(c, "Failed to list drill logs")
		return
	}
	utils.SendSuccess(c, logs)
}
