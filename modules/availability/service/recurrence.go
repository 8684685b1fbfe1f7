package service

import (
	"fmt"
	"time"

	"go-booking-api/modules/availability/entity"
	scheduleentity "go-booking-api/modules/schedule/entity"
)

// ExpandRules turns weekly recurring rules into concrete windows for every
// matching calendar day in [rangeStart, rangeEnd). Rule times are wall-clock
// in loc, so "09:00-17:00" stays local 9-5 across DST transitions. Inactive
// rules are skipped; overlap between rules is left for MergeWindows.
func ExpandRules(rules []scheduleentity.AvailabilityRule, rangeStart, rangeEnd time.Time, loc *time.Location) ([]entity.TimeWindow, error) {
	if loc == nil {
		loc = time.UTC
	}

	type ruleTimes struct {
		day                int
		startHour, startMin int
		endHour, endMin     int
	}

	parsed := make([]ruleTimes, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
			return nil, fmt.Errorf("rule %s: day of week %d out of range", rule.ID, rule.DayOfWeek)
		}

		sh, sm, err := scheduleentity.ParseTimeOfDay(rule.StartTime)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		eh, em, err := scheduleentity.ParseTimeOfDay(rule.EndTime)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		if eh*60+em <= sh*60+sm {
			return nil, fmt.Errorf("rule %s: end %s not after start %s", rule.ID, rule.EndTime, rule.StartTime)
		}

		parsed = append(parsed, ruleTimes{
			day:       rule.DayOfWeek,
			startHour: sh, startMin: sm,
			endHour: eh, endMin: em,
		})
	}

	if len(parsed) == 0 {
		return nil, nil
	}

	var windows []entity.TimeWindow

	// Walk calendar days in the target zone. time.Date normalizes day+1,
	// which keeps the walk correct across DST boundaries.
	first := rangeStart.In(loc)
	year, month, day := first.Date()
	for {
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if !dayStart.Before(rangeEnd) {
			break
		}

		weekday := int(dayStart.Weekday())
		for _, r := range parsed {
			if r.day != weekday {
				continue
			}
			windows = append(windows, entity.TimeWindow{
				Start: time.Date(year, month, day, r.startHour, r.startMin, 0, 0, loc),
				End:   time.Date(year, month, day, r.endHour, r.endMin, 0, 0, loc),
			})
		}

		day++
	}

	return windows, nil
}
