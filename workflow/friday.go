package workflow

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// untilFriday returns the time left until the next Friday 00:00 in now's
// location. On a Friday it returns zero.
func untilFriday(now time.Time) time.Duration {
	if now.Weekday() == time.Friday {
		return 0
	}
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	next := time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

func formatCountdown(d time.Duration) string {
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d дней, %d часов, %d минут и %d секунд", days, hours, minutes, seconds)
}

func fridayText(now time.Time) string {
	left := untilFriday(now)
	if left <= 0 {
		return textFridayToday
	}
	return fmt.Sprintf(textFridayCountdown, formatCountdown(left))
}
