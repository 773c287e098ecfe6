package config

import (
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/Seth7171/TaleWeaver-sub000/internal/appearance"
	"github.com/Seth7171/TaleWeaver-sub000/internal/book"
	"github.com/Seth7171/TaleWeaver-sub000/internal/scheduler"
)

type (
	Config struct {
		HTTP
		Book
		Autoplay
		Global
		Database
	}

	HTTP struct {
		Port int32
		Host string
	}
	Book struct {
		PoolSize  int
		Filler    string
		DeltaTime string // "scaled" or "unscaled"
		TimeScale float64
		TickRate  int
		TurnTime  time.Duration // Default per-page turn time
		OpenTime  time.Duration // Default open/close time
		SeedPages int           // Pages created when the database is empty
	}
	Autoplay struct {
		Enabled  bool
		Schedule string // Cron format: "* * * * *" = every minute
		Loop     bool
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Book defaults
	v.SetDefault("book_pool_size", book.DefaultMaxPagesTurningCount)
	v.SetDefault("book_filler_appearance", DefaultFillerAppearance)
	v.SetDefault("book_delta_time", "scaled")
	v.SetDefault("book_time_scale", 1.0)
	v.SetDefault("book_tick_rate", 60)
	v.SetDefault("book_turn_time", "1s")
	v.SetDefault("book_open_time", "1s")
	v.SetDefault("book_seed_pages", 20)

	// Autoplay defaults
	v.SetDefault("autoplay_enabled", false)
	v.SetDefault("autoplay_schedule", "* * * * *") // Every minute
	v.SetDefault("autoplay_loop", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Book: Book{
			PoolSize:  v.GetInt("BOOK_POOL_SIZE"),
			Filler:    v.GetString("BOOK_FILLER_APPEARANCE"),
			DeltaTime: v.GetString("BOOK_DELTA_TIME"),
			TimeScale: v.GetFloat64("BOOK_TIME_SCALE"),
			TickRate:  v.GetInt("BOOK_TICK_RATE"),
			TurnTime:  v.GetDuration("BOOK_TURN_TIME"),
			OpenTime:  v.GetDuration("BOOK_OPEN_TIME"),
			SeedPages: v.GetInt("BOOK_SEED_PAGES"),
		},
		Autoplay: Autoplay{
			Enabled:  v.GetBool("AUTOPLAY_ENABLED"),
			Schedule: v.GetString("AUTOPLAY_SCHEDULE"),
			Loop:     v.GetBool("AUTOPLAY_LOOP"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
	}
}

// BookConfig returns the engine configuration. Invalid values fall back to
// the defaults with a warning.
func (c *Config) BookConfig() book.Config {
	cfg := book.DefaultConfig()
	cfg.Filler = appearance.Handle(c.Book.Filler)

	if c.Book.PoolSize < 1 {
		log.Printf("Config: BOOK_POOL_SIZE %d is below 1, using 1", c.Book.PoolSize)
		cfg.MaxPagesTurningCount = 1
	} else {
		cfg.MaxPagesTurningCount = c.Book.PoolSize
	}

	dt, err := book.ParseDeltaTime(c.Book.DeltaTime)
	if err != nil {
		log.Printf("Config: %v, using scaled", err)
		dt = book.DeltaScaled
	}
	cfg.DeltaTime = dt
	return cfg
}

// AutoplayConfig returns the autoplay scheduler configuration.
func (c *Config) AutoplayConfig() scheduler.AutoplayConfig {
	return scheduler.AutoplayConfig{
		Enabled:  c.Autoplay.Enabled,
		Schedule: c.Autoplay.Schedule,
		TurnTime: c.Book.TurnTime,
		OpenTime: c.Book.OpenTime,
		Loop:     c.Autoplay.Loop,
	}
}
