package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
)

// DefaultMaxPagesTurningCount is the default number of concurrently turning leaves.
const DefaultMaxPagesTurningCount = 5

// DeltaTime selects which delta of a Frame drives the book.
type DeltaTime int

const (
	DeltaScaled DeltaTime = iota
	DeltaUnscaled
)

func (d DeltaTime) String() string {
	if d == DeltaUnscaled {
		return "unscaled"
	}
	return "scaled"
}

// ParseDeltaTime parses "scaled" or "unscaled".
func ParseDeltaTime(s string) (DeltaTime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scaled", "":
		return DeltaScaled, nil
	case "unscaled":
		return DeltaUnscaled, nil
	default:
		return 0, fmt.Errorf("unknown delta time source %q", s)
	}
}

// Config is the stable configuration of a Book.
type Config struct {
	MaxPagesTurningCount int
	Filler               appearance.Handle
	DeltaTime            DeltaTime
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxPagesTurningCount: DefaultMaxPagesTurningCount,
		DeltaTime:            DeltaScaled,
	}
}

// Frame is one tick of the host loop.
type Frame struct {
	Delta         time.Duration
	UnscaledDelta time.Duration
}
