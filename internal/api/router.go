package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/api/handlers"
	"github.com/jdlevish/Golfcoachr10/internal/services"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, store *services.SessionStore, importer *services.Importer, analyzer *services.Analyzer, logger *logrus.Logger) {
	sessionHandler := handlers.NewSessionHandler(store, importer, analyzer, logger)
	drillHandler := handlers.NewDrillLogHandler(store, analyzer, logger)

	// Session endpoints
	group.POST("/sessions/import", sessionHandler.ImportSession)
	group.GET("/sessions", sessionHandler.ListSessions)
	group.GET("/sessions/:id/analysis", sessionHandler.GetAnalysis)
	group.GET("/sessions/:id/summary", sessionHandler.GetSummary)
	group.GET("/sessions/:id/gapping", sessionHandler.GetGapping)
	group.GET("/sessions/:id/coach", sessionHandler.GetCoach)
	group.GET("/sessions/:id/trends", sessionHandler.GetTrends)
	group.GET("/sessions/:id/insights", sessionHandler.GetInsights)
	group.DELETE("/sessions/:id", sessionHandler.DeleteSession)

	// Drill log endpoints
	group.POST("/drills", drillHandler.CreateDrillLog)
	group.GET("/drills", drillHandler.ListDrillLogs)
}
