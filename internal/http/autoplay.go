package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

type AutoplayStatusResponse struct {
	Running     bool              `json:"running"`
	NextRun     *time.Time        `json:"next_run,omitempty"`
	LastRun     *time.Time        `json:"last_run,omitempty"`
	LastOutcome scheduler.Outcome `json:"last_outcome,omitempty"`
}

// AutoplayController reports on and triggers the autoplay scheduler.
type AutoplayController struct {
	autoplay Autoplay
}

func NewAutoplayController(autoplay Autoplay) *AutoplayController {
	return &AutoplayController{autoplay: autoplay}
}

// GetStatus returns the scheduler status.
// GET /api/autoplay
func (ac *AutoplayController) GetStatus(c *gin.Context) {
	resp := AutoplayStatusResponse{
		Running: ac.autoplay.IsRunning(),
		NextRun: ac.autoplay.GetNextRunTime(),
	}
	if last, outcome := ac.autoplay.LastRun(); !last.IsZero() {
		resp.LastRun = &last
		resp.LastOutcome = outcome
	}
	c.JSON(http.StatusOK, resp)
}

// RunNow runs one autoplay step immediately.
// POST /api/autoplay/run
func (ac *AutoplayController) RunNow(c *gin.Context) {
	outcome, err := ac.autoplay.RunOnce(c.Request.Context())
	if err != nil {
		respondDriverError(c, err, "autoplay run")
		return
	}
	respondSuccess(c, string(outcome), gin.H{"outcome": outcome})
}
