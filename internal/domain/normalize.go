package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source column names in the Storm Events export consumed by normalization.
const (
	ColStateID       = "STATE__"
	ColStateName     = "STATE"
	ColCountyID      = "COUNTY"
	ColCountyName    = "COUNTYNAME"
	ColBeginDate     = "BGN_DATE"
	ColEventType     = "EVTYPE"
	ColFatalities    = "FATALITIES"
	ColInjuries      = "INJURIES"
	ColPropDamage    = "PROPDMG"
	ColPropDamageExp = "PROPDMGEXP"
	ColCropDamage    = "CROPDMG"
	ColCropDamageExp = "CROPDMGEXP"
)

// RequiredColumns returns the source columns the normalizer selects, in a
// stable order. Presence is required by name; column order in the file is
// irrelevant.
func RequiredColumns() []string {
	return []string{
		ColStateID, ColStateName, ColCountyID, ColCountyName,
		ColBeginDate, ColEventType,
		ColFatalities, ColInjuries,
		ColPropDamage, ColPropDamageExp, ColCropDamage, ColCropDamageExp,
	}
}

// ScaleFactor resolves a magnitude category code to its multiplier.
// Codes are trimmed and compared case-insensitively. The second return is
// false for unrecognized codes, which callers must treat as factor 1 plus a
// data-quality finding, never as a fatal error.
func ScaleFactor(code string) (float64, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "":
		return 1, true
	case "K":
		return 1e3, true
	case "M":
		return 1e6, true
	case "B":
		return 1e9, true
	default:
		return 1, false
	}
}

// CoerceID parses a numeric identifier cell. The export writes ids
// float-style ("48.00"), so it accepts any non-negative integral numeric
// string.
func CoerceID(value string) (int, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// beginDateLayouts covers BGN_DATE as written by the export: a date with a
// (always-zero) clock, or a bare date.
var beginDateLayouts = []string{"1/2/2006 15:04:05", "1/2/2006"}

// parseDateOrZero parses a BGN_DATE cell, returning the zero time when the
// value does not match any known layout. A missing date never fails the run;
// no in-scope summary consumes it.
func parseDateOrZero(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range beginDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize selects and coerces the mapped columns of a raw table into a
// Dataset. It fails fast with a SchemaError for a missing column or a
// CoercionError for an unparseable identifier; unrecognized magnitude codes
// degrade to scale factor 1 and are tallied in the quality report.
//
// excludeStateIDs is an optional denylist of known-bad state ids dropped
// before the canonical per-name reduction. It filters by id value, never by
// row position.
func Normalize(t *Table, excludeStateIDs []int) (*Dataset, error) {
	cols := make(map[string][]string, len(RequiredColumns()))
	for _, name := range RequiredColumns() {
		col, ok := t.Column(name)
		if !ok {
			return nil, &SchemaError{Column: name}
		}
		cols[name] = col
	}

	titleCaser := cases.Title(language.AmericanEnglish)

	ds := &Dataset{
		Records:    make([]StormRecord, 0, t.Len()),
		StateNames: make(map[int]string),
	}

	countySeen := make(map[County]struct{})

	for row := 0; row < t.Len(); row++ {
		stateID, ok := CoerceID(cols[ColStateID][row])
		if !ok {
			return nil, &CoercionError{Column: ColStateID, Row: row, Value: cols[ColStateID][row]}
		}
		countyID, ok := CoerceID(cols[ColCountyID][row])
		if !ok {
			return nil, &CoercionError{Column: ColCountyID, Row: row, Value: cols[ColCountyID][row]}
		}

		rec := StormRecord{
			StateID:        stateID,
			CountyID:       countyID,
			StartDate:      parseDateOrZero(cols[ColBeginDate][row]),
			Event:          titleCaser.String(strings.TrimSpace(cols[ColEventType][row])),
			Fatalities:     int(parseFloatOrZero(cols[ColFatalities][row])),
			Injuries:       int(parseFloatOrZero(cols[ColInjuries][row])),
			PropertyDamage: resolveDamage(cols[ColPropDamage][row], cols[ColPropDamageExp][row], ColPropDamageExp, &ds.Quality),
			CropDamage:     resolveDamage(cols[ColCropDamage][row], cols[ColCropDamageExp][row], ColCropDamageExp, &ds.Quality),
		}
		ds.Records = append(ds.Records, rec)

		stateName := strings.TrimSpace(cols[ColStateName][row])
		if _, seen := ds.StateNames[stateID]; !seen {
			ds.StateNames[stateID] = stateName
		}

		county := County{StateID: stateID, ID: countyID, Name: strings.TrimSpace(cols[ColCountyName][row])}
		if _, seen := countySeen[county]; !seen {
			countySeen[county] = struct{}{}
			ds.Counties = append(ds.Counties, county)
		}
	}

	ds.States = canonicalStates(ds.StateNames, excludeStateIDs)
	ds.StateAliases = stateAliases(ds.StateNames, ds.States)

	return ds, nil
}

// resolveDamage computes mantissa × scale factor for one damage cell pair,
// tallying unrecognized codes against the given exponent column.
func resolveDamage(rawValue, rawCode, codeColumn string, quality *QualityReport) float64 {
	factor, ok := ScaleFactor(rawCode)
	if !ok {
		quality.record(codeColumn, strings.TrimSpace(rawCode))
	}
	return parseFloatOrZero(rawValue) * factor
}

// canonicalStates reduces observed (id, name) pairs to one row per distinct
// name: denylisted ids are dropped first, then the numerically lowest
// surviving id wins per name. Output is ordered by id.
func canonicalStates(names map[int]string, excludeIDs []int) []State {
	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	lowest := make(map[string]int)
	for id, name := range names {
		if _, skip := excluded[id]; skip {
			continue
		}
		if cur, seen := lowest[name]; !seen || id < cur {
			lowest[name] = id
		}
	}

	states := make([]State, 0, len(lowest))
	for name, id := range lowest {
		states = append(states, State{ID: id, Name: name})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })
	return states
}

// stateAliases maps every observed state id to the canonical id for its
// name. An id whose name has no canonical survivor maps to itself.
func stateAliases(names map[int]string, states []State) map[int]int {
	canonical := make(map[string]int, len(states))
	for _, st := range states {
		canonical[st.Name] = st.ID
	}

	aliases := make(map[int]int, len(names))
	for id, name := range names {
		if canon, ok := canonical[name]; ok {
			aliases[id] = canon
		} else {
			aliases[id] = id
		}
	}
	return aliases
}
