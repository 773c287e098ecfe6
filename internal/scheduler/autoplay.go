package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
	"github.com/Seth7171/TaleWeaver-sub000/internal/timing"
)

// BookRunner runs a function on the goroutine that owns a book.
type BookRunner interface {
	Do(ctx context.Context, fn func(*book.Book)) error
}

// ViewStore receives the book view after every autoplay turn.
type ViewStore interface {
	SetSetting(key, value string) error
	SetInt(key string, value int) error
}

// AutoplayConfig controls the autoplay scheduler.
type AutoplayConfig struct {
	Enabled  bool
	Schedule string
	TurnTime time.Duration
	OpenTime time.Duration
	// Loop jumps back to the first page once the last group is reached.
	Loop bool
}

// Outcome is the result of one autoplay run.
type Outcome string

const (
	OutcomeTurned      Outcome = "turned"
	OutcomeLooped      Outcome = "looped"
	OutcomeBusy        Outcome = "skipped_busy"
	OutcomeAtLastGroup Outcome = "skipped_last_group"
	OutcomeFailed      Outcome = "failed"
)

// AutoplayScheduler turns the book one page group forward on a cron schedule.
type AutoplayScheduler struct {
	runner BookRunner
	config AutoplayConfig
	views  ViewStore

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	statusMu    sync.Mutex
	lastRun     time.Time
	lastOutcome Outcome
}

// NewAutoplayScheduler creates a new scheduler instance
func NewAutoplayScheduler(runner BookRunner, config AutoplayConfig) *AutoplayScheduler {
	return &AutoplayScheduler{
		runner: runner,
		config: config,
		cron:   cron.New(cron.WithParser(cronParser())),
	}
}

// SetViewStore makes every completed autoplay turn persist the book state and
// page, so an advance survives a crash.
func (s *AutoplayScheduler) SetViewStore(views ViewStore) {
	s.views = views
}

func cronParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser().Parse(schedule)
	return err
}

// Start begins the scheduler if autoplay is enabled
func (s *AutoplayScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Autoplay scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.run()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule autoplay job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Autoplay scheduler: started with schedule '%s'. Next run: %v", s.config.Schedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AutoplayScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Autoplay scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *AutoplayScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next turn will occur
func (s *AutoplayScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextRunLocked()
}

func (s *AutoplayScheduler) nextRunLocked() *time.Time {
	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// LastRun returns the time and outcome of the last run.
func (s *AutoplayScheduler) LastRun() (time.Time, Outcome) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.lastRun, s.lastOutcome
}

func (s *AutoplayScheduler) run() {
	outcome, err := s.RunOnce(context.Background())
	if err != nil {
		log.Printf("Autoplay: %v", err)
	}
	log.Printf("Autoplay: %s", outcome)
}

// RunOnce turns one group forward now. A busy book is left alone.
func (s *AutoplayScheduler) RunOnce(ctx context.Context) (Outcome, error) {
	var (
		outcome Outcome
		turnErr error
	)
	err := s.runner.Do(ctx, func(b *book.Book) {
		switch {
		case b.IsTurningPages() || b.IsChangingState() || b.IsDraggingPage():
			outcome = OutcomeBusy
		case b.IsLastPageGroup():
			if !s.config.Loop {
				outcome = OutcomeAtLastGroup
				return
			}
			turnErr = b.TurnToPage(1, timing.TotalTurnTime, s.config.TurnTime, s.config.OpenTime, s.callbacks())
			outcome = OutcomeLooped
		default:
			turnErr = b.TurnForward(s.config.TurnTime, s.config.OpenTime, s.callbacks())
			outcome = OutcomeTurned
		}
	})
	if err == nil {
		err = turnErr
	}
	if err != nil {
		outcome = OutcomeFailed
		err = fmt.Errorf("failed to turn page: %w", err)
	}

	s.statusMu.Lock()
	s.lastRun = time.Now()
	s.lastOutcome = outcome
	s.statusMu.Unlock()

	return outcome, err
}

// callbacks persists the view when the turn lands. It runs on the book's
// goroutine.
func (s *AutoplayScheduler) callbacks() book.TurnCallbacks {
	views := s.views
	if views == nil {
		return book.TurnCallbacks{}
	}
	return book.TurnCallbacks{
		OnCompleted: func(_, to book.State, page int) {
			if err := views.SetSetting(entities.SettingKeyBookState, to.String()); err != nil {
				log.Printf("Autoplay: failed to persist state: %v", err)
			}
			if err := views.SetInt(entities.SettingKeyBookPage, page); err != nil {
				log.Printf("Autoplay: failed to persist page: %v", err)
			}
		},
	}
}
