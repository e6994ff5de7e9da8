package domain

import (
	"fmt"
	"sort"
)

// The three summaries below share one shape: a single pass that groups rows
// by key in first-encounter order, reduces with count/sum, then stable-sorts
// descending by the ranking key. The stable sort is a contract, not an
// implementation detail: tie groups keep encounter order, which decides what
// survives top-N truncation downstream.

// SummarizeHealth groups records by event type and totals population-health
// harm. Sorted descending by TotalHarm.
func SummarizeHealth(records []StormRecord) []HealthSummaryRow {
	idx := make(map[string]int)
	rows := make([]HealthSummaryRow, 0)

	for _, rec := range records {
		i, seen := idx[rec.Event]
		if !seen {
			i = len(rows)
			idx[rec.Event] = i
			rows = append(rows, HealthSummaryRow{Event: rec.Event})
		}
		rows[i].Events++
		rows[i].Fatalities += rec.Fatalities
		rows[i].Injuries += rec.Injuries
	}
	for i := range rows {
		rows[i].TotalHarm = rows[i].Fatalities + rows[i].Injuries
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalHarm > rows[j].TotalHarm })
	return rows
}

// SummarizeEconomic groups records by event type and totals damage amounts.
// Sorted descending by TotalDamage.
func SummarizeEconomic(records []StormRecord) []EconomicSummaryRow {
	idx := make(map[string]int)
	rows := make([]EconomicSummaryRow, 0)

	for _, rec := range records {
		i, seen := idx[rec.Event]
		if !seen {
			i = len(rows)
			idx[rec.Event] = i
			rows = append(rows, EconomicSummaryRow{Event: rec.Event})
		}
		rows[i].Events++
		rows[i].PropertyDamage += rec.PropertyDamage
		rows[i].CropDamage += rec.CropDamage
	}
	for i := range rows {
		rows[i].TotalDamage = rows[i].PropertyDamage + rows[i].CropDamage
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalDamage > rows[j].TotalDamage })
	return rows
}

// SummarizeStates groups records by canonical state id, totals all harm
// measures, and attaches state names through the observation map. Records
// whose id is aliased to another id for the same name fold into that group,
// so one state name is one group. Sorted descending by event count. Damage
// is scaled to tens of thousands of dollars.
func SummarizeStates(records []StormRecord, aliases map[int]int, stateNames map[int]string) []StateSummaryRow {
	type acc struct {
		events     int
		property   float64
		crop       float64
		fatalities int
		injuries   int
	}

	idx := make(map[int]int)
	order := make([]int, 0)
	accs := make([]acc, 0)

	for _, rec := range records {
		id := rec.StateID
		if canon, ok := aliases[id]; ok {
			id = canon
		}
		i, seen := idx[id]
		if !seen {
			i = len(accs)
			idx[id] = i
			order = append(order, id)
			accs = append(accs, acc{})
		}
		accs[i].events++
		accs[i].property += rec.PropertyDamage
		accs[i].crop += rec.CropDamage
		accs[i].fatalities += rec.Fatalities
		accs[i].injuries += rec.Injuries
	}

	rows := make([]StateSummaryRow, len(accs))
	for i, id := range order {
		name, ok := stateNames[id]
		if !ok {
			name = fmt.Sprintf("State %d", id)
		}
		rows[i] = StateSummaryRow{
			StateID:      id,
			StateName:    name,
			Events:       accs[i].events,
			DamageScaled: (accs[i].property + accs[i].crop) / 1e4,
			Fatalities:   accs[i].fatalities,
			Injuries:     accs[i].injuries,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Events > rows[j].Events })
	return rows
}
