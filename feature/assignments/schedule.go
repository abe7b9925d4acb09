package assignments

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fsm00037/terauja-backend/core/models"
)

const (
	// scheduleBuffer keeps new schedules out of the immediate past.
	scheduleBuffer = 2 * time.Minute
	// minWindowLeft is the smallest remaining daily window worth scheduling in.
	minWindowLeft = 5 * time.Minute
	// searchDays bounds how far ahead a free window is searched for.
	searchDays = 8
)

func parseClock(s string, defHour, defMin int) (int, int) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defHour, defMin
	}
	return h, m
}

// NextScheduledTime picks a random instant inside the assignment's daily
// delivery window. The result is at least two minutes in the future and, when
// lastSentAt is given, respects the configured minimum gap between deliveries.
// If no window with at least five minutes of room exists within the next eight
// days, it falls back to one day from now.
func NextScheduledTime(a *models.Assignment, lastSentAt *time.Time, now time.Time) time.Time {
	bufferNow := now.Add(scheduleBuffer)

	windowStart := "09:00"
	if a.WindowStart != nil && *a.WindowStart != "" {
		windowStart = *a.WindowStart
	}
	windowEnd := "21:00"
	if a.WindowEnd != nil && *a.WindowEnd != "" {
		windowEnd = *a.WindowEnd
	}
	hStart, mStart := parseClock(windowStart, 9, 0)
	hEnd, mEnd := parseClock(windowEnd, 21, 0)

	earliestByGap := now
	if lastSentAt != nil {
		gap := 0
		if a.MinHoursBetween != nil {
			gap = *a.MinHoursBetween
		}
		earliestByGap = lastSentAt.Add(time.Duration(gap) * time.Hour)
	}

	for i := 0; i < searchDays; i++ {
		day := now.AddDate(0, 0, i)
		opens := time.Date(day.Year(), day.Month(), day.Day(), hStart, mStart, 0, 0, now.Location())
		closes := time.Date(day.Year(), day.Month(), day.Day(), hEnd, mEnd, 0, 0, now.Location())

		searchStart := opens
		if bufferNow.After(searchStart) {
			searchStart = bufferNow
		}
		if earliestByGap.After(searchStart) {
			searchStart = earliestByGap
		}

		if avail := closes.Sub(searchStart); avail > minWindowLeft {
			offset := time.Duration(rand.Int63n(int64(avail) + 1))
			return searchStart.Add(offset)
		}
	}
	return now.Add(24 * time.Hour)
}

var endDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEndDate parses the frontend's ISO end date. A bare date, or a midnight
// timestamp, is normalized to the end of that day so assignments stay active
// through their final day.
func parseEndDate(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	var parsed time.Time
	var err error
	for _, layout := range endDateLayouts {
		if parsed, err = time.Parse(layout, s); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, err
	}
	if parsed.Hour() == 0 && parsed.Minute() == 0 && parsed.Second() == 0 {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 0, parsed.Location())
	}
	return parsed, nil
}

// expired reports whether an active assignment's end date has passed.
func expired(a *models.Assignment, now time.Time) bool {
	if a.Status != models.AssignmentActive || a.EndDate == nil {
		return false
	}
	end, err := parseEndDate(*a.EndDate)
	if err != nil {
		return false
	}
	return now.After(end)
}
