package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
	"github.com/Seth7171/TaleWeaver-sub000/internal/headless"
)

// directRunner runs commands on the calling goroutine.
type directRunner struct {
	book  *book.Book
	stage *headless.Stage
	err   error
}

func (r *directRunner) Do(_ context.Context, fn func(*book.Book)) error {
	if r.err != nil {
		return r.err
	}
	fn(r.book)
	return nil
}

// memoryViews records persisted settings.
type memoryViews map[string]any

func (m memoryViews) SetSetting(key, value string) error {
	m[key] = value
	return nil
}

func (m memoryViews) SetInt(key string, value int) error {
	m[key] = value
	return nil
}

func newRunner(t *testing.T, pages, page int) *directRunner {
	t.Helper()
	stage := headless.NewStage()
	b := book.New(book.DefaultConfig(), appearance.NewRegistry(), stage.States(), stage.LeafFactory(),
		book.WithLogger(log.New(io.Discard, "", 0)),
		book.WithPages(make([]appearance.Handle, pages)),
		book.WithState(book.OpenMiddle),
		book.WithPageNumber(page),
	)
	return &directRunner{book: b, stage: stage}
}

func TestAutoplayRunOnce(t *testing.T) {
	t.Run("turns forward", func(t *testing.T) {
		r := newRunner(t, 10, 1)
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: time.Second})

		outcome, err := s.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, OutcomeTurned, outcome)
		assert.True(t, r.book.IsTurningPages())
		_, last := s.LastRun()
		assert.Equal(t, OutcomeTurned, last)
	})

	t.Run("skips a busy book", func(t *testing.T) {
		r := newRunner(t, 10, 1)
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: time.Second})
		_, err := s.RunOnce(context.Background())
		require.NoError(t, err)

		outcome, err := s.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, OutcomeBusy, outcome)
	})

	t.Run("stops at the last group", func(t *testing.T) {
		r := newRunner(t, 10, 9)
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: time.Second})

		outcome, err := s.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, OutcomeAtLastGroup, outcome)
		assert.False(t, r.book.IsTurningPages())
	})

	t.Run("loops back to the first page", func(t *testing.T) {
		r := newRunner(t, 10, 9)
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: 0, Loop: true})

		outcome, err := s.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, OutcomeLooped, outcome)
		assert.Equal(t, 1, r.book.CurrentPageNumber())
	})

	t.Run("persists the view when the turn lands", func(t *testing.T) {
		r := newRunner(t, 10, 3)
		views := memoryViews{}
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: 0})
		s.SetViewStore(views)

		_, err := s.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "OpenMiddle", views[entities.SettingKeyBookState])
		assert.Equal(t, 5, views[entities.SettingKeyBookPage])
	})

	t.Run("persists only after an animated turn completes", func(t *testing.T) {
		r := newRunner(t, 10, 9)
		views := memoryViews{}
		s := NewAutoplayScheduler(r, AutoplayConfig{TurnTime: 100 * time.Millisecond, Loop: true})
		s.SetViewStore(views)

		outcome, err := s.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutcomeLooped, outcome)
		assert.Empty(t, views)

		stage := r.stage
		for i := 0; i < 100 && r.book.IsTurningPages(); i++ {
			f := book.Frame{Delta: 10 * time.Millisecond, UnscaledDelta: 10 * time.Millisecond}
			r.book.Tick(f)
			stage.Advance(r.book.Delta(f))
		}

		assert.False(t, r.book.IsTurningPages())
		assert.Equal(t, 1, views[entities.SettingKeyBookPage])
	})

	t.Run("reports runner errors", func(t *testing.T) {
		r := newRunner(t, 10, 1)
		r.err = errors.New("driver is not running")
		s := NewAutoplayScheduler(r, AutoplayConfig{})

		outcome, err := s.RunOnce(context.Background())

		assert.Error(t, err)
		assert.Equal(t, OutcomeFailed, outcome)
	})
}

func TestAutoplayStartStop(t *testing.T) {
	t.Run("disabled does not start", func(t *testing.T) {
		s := NewAutoplayScheduler(newRunner(t, 4, 1), AutoplayConfig{Schedule: "* * * * *"})

		require.NoError(t, s.Start(context.Background()))

		assert.False(t, s.IsRunning())
		assert.Nil(t, s.GetNextRunTime())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewAutoplayScheduler(newRunner(t, 4, 1), AutoplayConfig{Enabled: true, Schedule: "every minute"})

		assert.Error(t, s.Start(context.Background()))
		assert.False(t, s.IsRunning())
	})

	t.Run("start and stop", func(t *testing.T) {
		s := NewAutoplayScheduler(newRunner(t, 4, 1), AutoplayConfig{Enabled: true, Schedule: "*/5 * * * *"})

		require.NoError(t, s.Start(context.Background()))
		assert.True(t, s.IsRunning())
		assert.NotNil(t, s.GetNextRunTime())

		s.Stop()
		assert.False(t, s.IsRunning())
		s.Stop()
	})

	t.Run("stops with its context", func(t *testing.T) {
		s := NewAutoplayScheduler(newRunner(t, 4, 1), AutoplayConfig{Enabled: true, Schedule: "*/5 * * * *"})
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, s.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
	})
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("* * * *"))
	assert.Error(t, ValidateSchedule(""))
}
