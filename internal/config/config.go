package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries everything the service reads from the environment.
// It is built once in main and handed to constructors explicitly; the
// core never reads the environment on its own.
type Config struct {
	HTTPAddr    string
	DBPath      string
	CORSOrigins []string
	Scheduling  Scheduling
	Paging      Paging
}

// Scheduling bounds job creation and booking.
type Scheduling struct {
	// DayStartHour/DayEndHour define the fixed daily work window in UTC.
	DayStartHour int
	DayEndHour   int
	// ShiftLimitHours caps the raw requested span of a job.
	ShiftLimitHours int
	// BreakHours is the minimum rest period between a talent's shifts.
	BreakHours int
}

// Paging holds the default page sizes for the list endpoints.
type Paging struct {
	JobPageSize   int
	ShiftPageSize int
}

// Load reads SHIFTWISE_* environment variables, falling back to
// defaults that mirror the documented behavior (08:00-17:00 UTC window,
// 8h job cap, 2h rest period).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHIFTWISE")
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_path", "shiftwise.db")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("day_start_hour", 8)
	v.SetDefault("day_end_hour", 17)
	v.SetDefault("shift_limit_hours", 8)
	v.SetDefault("break_hours", 2)
	v.SetDefault("page_size", 10)
	v.SetDefault("shift_page_size", 10)

	cfg := &Config{
		HTTPAddr:    v.GetString("http_addr"),
		DBPath:      v.GetString("db_path"),
		CORSOrigins: v.GetStringSlice("cors_origins"),
		Scheduling: Scheduling{
			DayStartHour:    v.GetInt("day_start_hour"),
			DayEndHour:      v.GetInt("day_end_hour"),
			ShiftLimitHours: v.GetInt("shift_limit_hours"),
			BreakHours:      v.GetInt("break_hours"),
		},
		Paging: Paging{
			JobPageSize:   v.GetInt("page_size"),
			ShiftPageSize: v.GetInt("shift_page_size"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	s := c.Scheduling
	if s.DayStartHour < 0 || s.DayStartHour > 23 || s.DayEndHour < 0 || s.DayEndHour > 23 {
		return fmt.Errorf("day window hours must be within 0-23, got %d-%d", s.DayStartHour, s.DayEndHour)
	}
	if s.DayEndHour <= s.DayStartHour {
		return fmt.Errorf("day end hour %d must be after day start hour %d", s.DayEndHour, s.DayStartHour)
	}
	if s.ShiftLimitHours <= 0 {
		return fmt.Errorf("shift limit hours must be positive, got %d", s.ShiftLimitHours)
	}
	if s.BreakHours < 0 {
		return fmt.Errorf("break hours must not be negative, got %d", s.BreakHours)
	}
	if c.Paging.JobPageSize <= 0 || c.Paging.ShiftPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive, got %d and %d", c.Paging.JobPageSize, c.Paging.ShiftPageSize)
	}
	return nil
}
