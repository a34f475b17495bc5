package commute

import (
	"time"

	"skycheck/internal/types"
)

// Leg identifies which half of a shift a report covers.
type Leg string

const (
	LegOutbound Leg = "outbound"
	LegReturn   Leg = "return"
)

// LegReport is the scored result for one commute leg. Found is false when no
// forecast sample covered the requested window; the other result fields are
// zero in that case.
type LegReport struct {
	Leg      Leg                       `json:"leg"`
	Date     string                    `json:"date"` // YYYY-MM-DD
	Window   [2]string                 `json:"window"`
	Found    bool                      `json:"found"`
	Sample   *types.HourlySample       `json:"sample,omitempty"`
	Verdict  *types.RideabilityVerdict `json:"verdict,omitempty"`
	Clothing string                    `json:"clothing,omitempty"`
}

// ShiftReport aggregates both legs of one named shift on one date.
type ShiftReport struct {
	Shift string      `json:"shift"`
	Legs  []LegReport `json:"legs"`
}

// EvaluateShift scores both legs of a shift against the hourly series for the
// given calendar date. The outbound leg uses the literal date; the return leg
// rolls to the next day for overnight shifts.
//
// Legs without a matching forecast slot are reported with Found=false rather
// than failing the shift: callers batching several shifts or dates skip them.
func EvaluateShift(hourly []types.HourlySample, date time.Time, shift types.ShiftWindow) (ShiftReport, error) {
	report := ShiftReport{Shift: shift.Name}

	outbound, err := evaluateLeg(hourly, date, LegOutbound, shift.OutboundStart, shift.OutboundEnd)
	if err != nil {
		return ShiftReport{}, err
	}
	report.Legs = append(report.Legs, outbound)

	returnDate, err := ReturnLegDate(date, shift)
	if err != nil {
		return ShiftReport{}, err
	}
	ret, err := evaluateLeg(hourly, returnDate, LegReturn, shift.ReturnStart, shift.ReturnEnd)
	if err != nil {
		return ShiftReport{}, err
	}
	report.Legs = append(report.Legs, ret)

	return report, nil
}

// evaluateLeg selects the slot for one leg and scores it.
func evaluateLeg(hourly []types.HourlySample, date time.Time, leg Leg, start, end string) (LegReport, error) {
	report := LegReport{
		Leg:    leg,
		Date:   date.Format("2006-01-02"),
		Window: [2]string{start, end},
	}

	sample, err := SelectSlot(hourly, date, start, end)
	if err != nil {
		return LegReport{}, err
	}
	if sample == nil {
		return report, nil
	}

	verdict := Evaluate(*sample)
	report.Found = true
	report.Sample = sample
	report.Verdict = &verdict
	report.Clothing = ClothingAdvice(sample.TemperatureC)
	return report, nil
}
