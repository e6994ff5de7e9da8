package domain

import "fmt"

// Display labels for the pivoted measure columns.
const (
	LabelFatalities     = "Fatalities"
	LabelInjuries       = "Injuries"
	LabelPropertyDamage = "Property damage"
	LabelCropDamage     = "Crop damage"
	LabelEventCount     = "Number of events"
	LabelDamageScaled   = "Damage (tens of thousands USD)"
)

const sourceCaption = "Source: NOAA Storm Events database"

// BuildHealthReport truncates the health summary to its top n event types and
// pivots fatalities and injuries into long form.
func BuildHealthReport(rows []HealthSummaryRow, n int) Report {
	top := topN(rows, n)

	long := make([]LongRow, 0, len(top)*2)
	for _, r := range top {
		long = append(long, LongRow{GroupKey: r.Event, Value: float64(r.Fatalities), Label: LabelFatalities})
	}
	for _, r := range top {
		long = append(long, LongRow{GroupKey: r.Event, Value: float64(r.Injuries), Label: LabelInjuries})
	}

	return Report{
		Name:       "health_by_event",
		KeyHeading: "event",
		Rows:       long,
		Plot: PlotSpec{
			Title:    "Most harmful weather event types for population health",
			Subtitle: subtitleTopN("event types by combined fatalities and injuries", len(top)),
			Caption:  sourceCaption,
			LogTicks: logTicks(maxValue(long)),
		},
		GeneratedAt: clock.Now(),
	}
}

// BuildEconomicReport truncates the economic summary to its top n event types
// and pivots property and crop damage into long form.
func BuildEconomicReport(rows []EconomicSummaryRow, n int) Report {
	top := topN(rows, n)

	long := make([]LongRow, 0, len(top)*2)
	for _, r := range top {
		long = append(long, LongRow{GroupKey: r.Event, Value: r.PropertyDamage, Label: LabelPropertyDamage})
	}
	for _, r := range top {
		long = append(long, LongRow{GroupKey: r.Event, Value: r.CropDamage, Label: LabelCropDamage})
	}

	return Report{
		Name:       "economic_by_event",
		KeyHeading: "event",
		Rows:       long,
		Plot: PlotSpec{
			Title:    "Weather event types with the greatest economic consequences",
			Subtitle: subtitleTopN("event types by combined property and crop damage (USD)", len(top)),
			Caption:  sourceCaption,
			LogTicks: logTicks(maxValue(long)),
		},
		GeneratedAt: clock.Now(),
	}
}

// BuildStateReport pivots the full state summary into long form with four
// measures per state. It is never truncated; there are only a few dozen
// states. Rows arrive already folded to one entry per state name, so each
// group key appears exactly once per measure.
func BuildStateReport(rows []StateSummaryRow) Report {
	long := make([]LongRow, 0, len(rows)*4)
	for _, r := range rows {
		long = append(long, LongRow{GroupKey: r.StateName, Value: float64(r.Events), Label: LabelEventCount})
	}
	for _, r := range rows {
		long = append(long, LongRow{GroupKey: r.StateName, Value: r.DamageScaled, Label: LabelDamageScaled})
	}
	for _, r := range rows {
		long = append(long, LongRow{GroupKey: r.StateName, Value: float64(r.Fatalities), Label: LabelFatalities})
	}
	for _, r := range rows {
		long = append(long, LongRow{GroupKey: r.StateName, Value: float64(r.Injuries), Label: LabelInjuries})
	}

	return Report{
		Name:       "harm_by_state",
		KeyHeading: "state",
		Rows:       long,
		Plot: PlotSpec{
			Title:    "Weather-event harm by state",
			Subtitle: "All states, ranked by number of recorded events",
			Caption:  sourceCaption,
			LogTicks: logTicks(maxValue(long)),
		},
		GeneratedAt: clock.Now(),
	}
}

// topN returns the first n rows of an already-ranked summary. The input is
// sorted by the aggregator, so slicing is the whole ranking step.
func topN[T any](rows []T, n int) []T {
	if n <= 0 || n >= len(rows) {
		return append([]T(nil), rows...)
	}
	return append([]T(nil), rows[:n]...)
}

// logTicks returns the powers of ten spanning [1, max], for log-scale axes.
func logTicks(max float64) []float64 {
	ticks := []float64{1}
	for t := 10.0; t <= max; t *= 10 {
		ticks = append(ticks, t)
	}
	return ticks
}

func maxValue(rows []LongRow) float64 {
	max := 0.0
	for _, r := range rows {
		if r.Value > max {
			max = r.Value
		}
	}
	return max
}

func subtitleTopN(what string, n int) string {
	return fmt.Sprintf("Top %d %s", n, what)
}
