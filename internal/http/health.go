package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Seth7171/TaleWeaver-sub000/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// EngineStatus reports whether the tick loop is alive.
type EngineStatus interface {
	IsRunning() bool
}

type HealthController struct {
	db      *database.Database
	engine  EngineStatus
	version string
}

func NewHealthController(db *database.Database, engine EngineStatus, version string) *HealthController {
	return &HealthController{
		db:      db,
		engine:  engine,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db == nil {
		checks["database"] = "not configured"
	} else if err := h.db.Ping(); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "ok"
	}

	switch {
	case h.engine == nil:
		checks["engine"] = "not configured"
	case h.engine.IsRunning():
		checks["engine"] = "ok"
	default:
		checks["engine"] = "stopped"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
