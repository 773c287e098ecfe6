package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

func autoplayRouter(a Autoplay) *gin.Engine {
	controller := NewAutoplayController(a)
	router := gin.New()
	router.GET("/api/autoplay", controller.GetStatus)
	router.POST("/api/autoplay/run", controller.RunNow)
	return router
}

func TestAutoplayController(t *testing.T) {
	t.Run("status before any run", func(t *testing.T) {
		s, cleanup := setupTestServer(t, 10, book.OpenMiddle)
		defer cleanup()
		a := scheduler.NewAutoplayScheduler(s.driver, scheduler.AutoplayConfig{TurnTime: 20 * time.Millisecond})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/autoplay", nil)
		autoplayRouter(a).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp AutoplayStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Running)
		assert.Nil(t, resp.LastRun)
	})

	t.Run("run turns the book", func(t *testing.T) {
		s, cleanup := setupTestServer(t, 10, book.OpenMiddle)
		defer cleanup()
		a := scheduler.NewAutoplayScheduler(s.driver, scheduler.AutoplayConfig{TurnTime: 20 * time.Millisecond})
		router := autoplayRouter(a)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/autoplay/run", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(scheduler.OutcomeTurned))
		assert.Equal(t, 3, s.waitIdle(t).PageNumber)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/autoplay", nil)
		router.ServeHTTP(w, req)
		var resp AutoplayStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.LastRun)
		assert.Equal(t, scheduler.OutcomeTurned, resp.LastOutcome)
	})

	t.Run("stopped engine", func(t *testing.T) {
		s, cleanup := setupTestServer(t, 10, book.OpenMiddle)
		defer cleanup()
		s.driver.Stop()
		a := scheduler.NewAutoplayScheduler(s.driver, scheduler.AutoplayConfig{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/autoplay/run", nil)
		autoplayRouter(a).ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
