// Package commute implements the rideability scoring pipeline for bicycle
// commuting: time-window slot selection over hourly forecast arrays and the
// graded verdict cascade that turns one weather sample into advice.
//
// Everything in this package is a pure function over its inputs. Absence of a
// matching forecast slot is modeled as a nil result, never an error; callers
// iterating multiple shifts or dates must skip absent slots and continue.
package commute

import (
	"time"

	"skycheck/internal/types"
)

// SlotToleranceMin is the tolerance applied on both ends of a requested
// window, in minutes. It absorbs hourly-grid misalignment with the window.
const SlotToleranceMin = 30

// SelectSlot picks the single hourly sample that best represents the
// [windowStart, windowEnd] wall-clock window on the given calendar date.
//
// Candidates are samples whose calendar date matches date and whose
// minute-of-day lies within [windowStart-30, windowEnd+30]. Among candidates
// the one closest to the window midpoint wins; ties keep the first
// encountered, which is stable because the input is time-ordered.
//
// A nil result means no forecast covers that slot. An error is returned only
// for malformed clock strings (an input-contract violation).
func SelectSlot(hourly []types.HourlySample, date time.Time, windowStart, windowEnd string) (*types.HourlySample, error) {
	startMin, err := types.ParseClockMinutes(windowStart)
	if err != nil {
		return nil, err
	}
	endMin, err := types.ParseClockMinutes(windowEnd)
	if err != nil {
		return nil, err
	}

	midpoint := float64(startMin+endMin) / 2
	wantYear, wantMonth, wantDay := date.Date()

	bestIdx := -1
	bestDist := 0.0

	for i := range hourly {
		ts := hourly[i].Timestamp
		y, m, d := ts.Date()
		if y != wantYear || m != wantMonth || d != wantDay {
			continue
		}

		minuteOfDay := ts.Hour()*60 + ts.Minute()
		if minuteOfDay < startMin-SlotToleranceMin || minuteOfDay > endMin+SlotToleranceMin {
			continue
		}

		dist := midpoint - float64(minuteOfDay)
		if dist < 0 {
			dist = -dist
		}
		// Strict less-than keeps the earliest candidate on ties.
		if bestIdx == -1 || dist < bestDist {
			bestIdx = i
			bestDist = dist
		}
	}

	if bestIdx == -1 {
		return nil, nil
	}

	picked := hourly[bestIdx]
	return &picked, nil
}

// ReturnLegDate resolves the calendar date of the return leg for a shift
// queried on date. Shifts whose return starts before the outbound start are
// overnight shifts: their return leg occurs on the following day. The
// outbound leg always uses the literal requested date.
func ReturnLegDate(date time.Time, shift types.ShiftWindow) (time.Time, error) {
	overnight, err := shift.Overnight()
	if err != nil {
		return time.Time{}, err
	}
	if overnight {
		return date.AddDate(0, 0, 1), nil
	}
	return date, nil
}
