package domain

import "time"

// StormRecord is one cleaned event occurrence.
type StormRecord struct {
	StateID    int
	CountyID   int
	StartDate  time.Time // zero when the source date was unparseable
	Event      string    // title-cased EVTYPE
	Fatalities int
	Injuries   int

	// Damage amounts in whole dollars: mantissa × magnitude scale factor.
	PropertyDamage float64
	CropDamage     float64
}

// State is one row of the canonical state reference table.
type State struct {
	ID   int
	Name string
}

// County is one row of the county reference table. ID is only unique within
// a state.
type County struct {
	StateID int
	ID      int
	Name    string
}

// QualityReport accumulates non-fatal data-quality findings from a
// normalization run: unrecognized magnitude scale codes per damage column.
type QualityReport struct {
	// BadMagnitudeCodes maps damage-exponent column name → code → occurrences.
	BadMagnitudeCodes map[string]map[string]int
}

func (q *QualityReport) record(column, code string) {
	if q.BadMagnitudeCodes == nil {
		q.BadMagnitudeCodes = make(map[string]map[string]int)
	}
	if q.BadMagnitudeCodes[column] == nil {
		q.BadMagnitudeCodes[column] = make(map[string]int)
	}
	q.BadMagnitudeCodes[column][code]++
}

// Total returns the number of rows affected by any finding.
func (q *QualityReport) Total() int {
	n := 0
	for _, codes := range q.BadMagnitudeCodes {
		for _, c := range codes {
			n += c
		}
	}
	return n
}

// Dataset is the normalizer's output: cleaned records plus the geography
// reference tables derived from the same pass. All fields are immutable
// after construction.
type Dataset struct {
	Records  []StormRecord
	States   []State
	Counties []County

	// StateNames maps every observed state id to its reported name,
	// including ids collapsed away by the canonical reduction. The state
	// summary joins through this map so no group loses its name.
	StateNames map[int]string

	// StateAliases maps every observed state id to the canonical id for its
	// name. The raw file contains distinct ids reporting the same state
	// name; grouping through this map folds them into one group, so a state
	// never appears twice in the state summary. Ids whose name has no
	// canonical survivor map to themselves.
	StateAliases map[int]int

	Quality QualityReport
}

// HealthSummaryRow aggregates population-health harm for one event type.
type HealthSummaryRow struct {
	Event      string
	Events     int
	Fatalities int
	Injuries   int
	TotalHarm  int // Fatalities + Injuries
}

// EconomicSummaryRow aggregates economic harm for one event type.
type EconomicSummaryRow struct {
	Event          string
	Events         int
	PropertyDamage float64
	CropDamage     float64
	TotalDamage    float64 // PropertyDamage + CropDamage
}

// StateSummaryRow aggregates all harm measures for one state id.
type StateSummaryRow struct {
	StateID      int
	StateName    string
	Events       int
	DamageScaled float64 // (property + crop damage) / 1e4
	Fatalities   int
	Injuries     int
}

// Summaries bundles the three independent aggregations.
type Summaries struct {
	Health   []HealthSummaryRow
	Economic []EconomicSummaryRow
	States   []StateSummaryRow
}

// LongRow is one row of a long-form (pivoted) plotting table: one designated
// numeric column of one summary row, stacked under a display label.
type LongRow struct {
	GroupKey string  `json:"group_key"`
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
}

// PlotSpec carries the axis and label metadata the rendering collaborator
// needs to configure a category-colored scatter on a log scale.
type PlotSpec struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Caption  string    `json:"caption"`
	LogTicks []float64 `json:"log_ticks"`
}

// Report is a reshaped summary ready for rendering.
type Report struct {
	Name        string    `json:"name"`        // file stem, e.g. "health_by_event"
	KeyHeading  string    `json:"key_heading"` // display name of the group key
	Rows        []LongRow `json:"rows"`
	Plot        PlotSpec  `json:"plot"`
	GeneratedAt time.Time `json:"generated_at"`
}
