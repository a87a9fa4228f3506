package services

import (
	"fmt"
	"time"

	"github.com/isdelr/staff-portal/internal/models"
	"github.com/robfig/cron/v3"
)

// CountdownServiceProvider defines the interface for the news page countdown.
type CountdownServiceProvider interface {
	Current(now time.Time) models.Countdown
}

// CountdownService counts down to a fixed instant or to the next run of a cron schedule.
type CountdownService struct {
	title    string
	target   time.Time
	schedule cron.Schedule
}

// NewCountdownService creates a new CountdownService. A non-empty cronExpr takes precedence
// over target.
func NewCountdownService(title string, target time.Time, cronExpr string) (*CountdownService, error) {
	s := &CountdownService{title: title, target: target}
	if cronExpr != "" {
		schedule, err := cron.ParseStandard(cronExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid countdown schedule %q: %w", cronExpr, err)
		}
		s.schedule = schedule
	}
	return s, nil
}

// Current returns the countdown as of now.
func (s *CountdownService) Current(now time.Time) models.Countdown {
	target := s.target
	if s.schedule != nil {
		target = s.schedule.Next(now)
	}
	return models.CountdownUntil(s.title, target, now)
}
