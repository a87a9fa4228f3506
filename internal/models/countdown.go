package models

import "time"

// Countdown is the time remaining until a target instant.
type Countdown struct {
	Title   string    `json:"title"`
	Target  time.Time `json:"target"`
	Days    int       `json:"days"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Seconds int       `json:"seconds"`
	Expired bool      `json:"expired"`
}

// CountdownUntil splits the time between now and target into days, hours, minutes and seconds.
// A target in the past yields all zeros and Expired.
func CountdownUntil(title string, target, now time.Time) Countdown {
	c := Countdown{Title: title, Target: target}
	diff := target.Sub(now)
	if diff <= 0 {
		c.Expired = true
		return c
	}
	total := int64(diff / time.Second)
	c.Days = int(total / 86400)
	c.Hours = int(total % 86400 / 3600)
	c.Minutes = int(total % 3600 / 60)
	c.Seconds = int(total % 60)
	return c
}
