package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stormHeader is the full selected column set in a fixed order for fixtures.
var stormHeader = []string{
	ColStateID, ColStateName, ColCountyID, ColCountyName,
	ColBeginDate, ColEventType, ColFatalities, ColInjuries,
	ColPropDamage, ColPropDamageExp, ColCropDamage, ColCropDamageExp,
}

func makeTable(t *testing.T, headers []string, rows ...[]string) *Table {
	t.Helper()
	table, err := NewTable(headers)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, table.AppendRow(row))
	}
	return table
}

// stormRow builds one fixture row with quiet defaults; overrides patch
// individual columns by name.
func stormRow(overrides map[string]string) []string {
	defaults := map[string]string{
		ColStateID:       "48.00",
		ColStateName:     "TX",
		ColCountyID:      "113.00",
		ColCountyName:    "DALLAS",
		ColBeginDate:     "4/18/1950 0:00:00",
		ColEventType:     "TORNADO",
		ColFatalities:    "0",
		ColInjuries:      "0",
		ColPropDamage:    "0",
		ColPropDamageExp: "",
		ColCropDamage:    "0",
		ColCropDamageExp: "",
	}
	for k, v := range overrides {
		defaults[k] = v
	}
	row := make([]string, len(stormHeader))
	for i, h := range stormHeader {
		row[i] = defaults[h]
	}
	return row
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		code   string
		factor float64
		ok     bool
	}{
		{"", 1, true},
		{"K", 1e3, true},
		{"M", 1e6, true},
		{"B", 1e9, true},
		{"k", 1e3, true},
		{"m", 1e6, true},
		{"b", 1e9, true},
		{" K ", 1e3, true},
		{"X", 1, false},
		{"?", 1, false},
		{"0", 1, false},
	}
	for _, tc := range tests {
		t.Run("code "+tc.code, func(t *testing.T) {
			factor, ok := ScaleFactor(tc.code)
			assert.Equal(t, tc.factor, factor)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestCoerceID(t *testing.T) {
	tests := []struct {
		value string
		id    int
		ok    bool
	}{
		{"48.00", 48, true},
		{"1", 1, true},
		{" 20 ", 20, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-3", 0, false},
		{"1.5", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			id, ok := CoerceID(tc.value)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.id, id)
			}
		})
	}
}

func TestParseDateOrZero(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"date with clock", "4/18/1950 0:00:00", time.Date(1950, 4, 18, 0, 0, 0, 0, time.UTC)},
		{"bare date", "11/28/2011", time.Date(2011, 11, 28, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "soon", time.Time{}},
		{"impossible date", "13/45/2011", time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseDateOrZero(tc.value))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("damage scale resolution", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColPropDamage: "2.5", ColPropDamageExp: "K"}),
			stormRow(map[string]string{ColPropDamage: "2.5", ColPropDamageExp: ""}),
			stormRow(map[string]string{ColPropDamage: "2.5", ColPropDamageExp: "X"}),
			stormRow(map[string]string{ColPropDamage: "1.2", ColPropDamageExp: "M", ColCropDamage: "3", ColCropDamageExp: "B"}),
		)

		ds, err := Normalize(table, nil)
		require.NoError(t, err)
		require.Len(t, ds.Records, 4)

		assert.Equal(t, 2500.0, ds.Records[0].PropertyDamage)
		assert.Equal(t, 2.5, ds.Records[1].PropertyDamage)
		assert.Equal(t, 2.5, ds.Records[2].PropertyDamage, "unrecognized code defaults to factor 1")
		assert.Equal(t, 1.2e6, ds.Records[3].PropertyDamage)
		assert.Equal(t, 3e9, ds.Records[3].CropDamage)

		assert.Equal(t, 1, ds.Quality.BadMagnitudeCodes[ColPropDamageExp]["X"])
		assert.Equal(t, 1, ds.Quality.Total())
	})

	t.Run("non-numeric damage mantissa coerces to zero", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColPropDamage: "n/a", ColPropDamageExp: "K"}),
		)
		ds, err := Normalize(table, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ds.Records[0].PropertyDamage)
	})

	t.Run("event title casing merges case variants only", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColEventType: "TSTM WIND"}),
			stormRow(map[string]string{ColEventType: "tstm wind"}),
			stormRow(map[string]string{ColEventType: "THUNDERSTORM WIND"}),
		)
		ds, err := Normalize(table, nil)
		require.NoError(t, err)

		assert.Equal(t, "Tstm Wind", ds.Records[0].Event)
		assert.Equal(t, "Tstm Wind", ds.Records[1].Event)
		assert.Equal(t, "Thunderstorm Wind", ds.Records[2].Event, "near-duplicate spellings stay distinct")
	})

	t.Run("float-formatted counts", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColFatalities: "2.00", ColInjuries: "15.00"}),
		)
		ds, err := Normalize(table, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Records[0].Fatalities)
		assert.Equal(t, 15, ds.Records[0].Injuries)
	})

	t.Run("unparseable date does not fail the run", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColBeginDate: "not a date"}),
		)
		ds, err := Normalize(table, nil)
		require.NoError(t, err)
		assert.True(t, ds.Records[0].StartDate.IsZero())
	})

	t.Run("missing column is a SchemaError", func(t *testing.T) {
		headers := stormHeader[:len(stormHeader)-1] // drop CROPDMGEXP
		table := makeTable(t, headers)

		_, err := Normalize(table, nil)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, ColCropDamageExp, schemaErr.Column)
	})

	t.Run("bad state id fails the whole run", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(nil),
			stormRow(map[string]string{ColStateID: "TEXAS"}),
		)

		_, err := Normalize(table, nil)
		var coerceErr *CoercionError
		require.ErrorAs(t, err, &coerceErr)
		assert.Equal(t, ColStateID, coerceErr.Column)
		assert.Equal(t, 1, coerceErr.Row)
		assert.Equal(t, "TEXAS", coerceErr.Value)
	})

	t.Run("bad county id fails the whole run", func(t *testing.T) {
		table := makeTable(t, stormHeader,
			stormRow(map[string]string{ColCountyID: ""}),
		)
		_, err := Normalize(table, nil)
		var coerceErr *CoercionError
		require.ErrorAs(t, err, &coerceErr)
		assert.Equal(t, ColCountyID, coerceErr.Column)
	})
}

func TestNormalizeGeography(t *testing.T) {
	table := makeTable(t, stormHeader,
		stormRow(map[string]string{ColStateID: "48.00", ColStateName: "TX", ColCountyID: "113", ColCountyName: "DALLAS"}),
		stormRow(map[string]string{ColStateID: "48.00", ColStateName: "TX", ColCountyID: "113", ColCountyName: "DALLAS"}),
		stormRow(map[string]string{ColStateID: "95.00", ColStateName: "TX", ColCountyID: "113", ColCountyName: "DALLAS"}),
		stormRow(map[string]string{ColStateID: "40.00", ColStateName: "OK", ColCountyID: "113", ColCountyName: "ADAIR"}),
		stormRow(map[string]string{ColStateID: "40.00", ColStateName: "OK", ColCountyID: "1", ColCountyName: "ADAIR"}),
	)

	t.Run("states reduce to lowest id per name", func(t *testing.T) {
		ds, err := Normalize(table, nil)
		require.NoError(t, err)

		assert.Equal(t, []State{{ID: 40, Name: "OK"}, {ID: 48, Name: "TX"}}, ds.States)
		assert.Equal(t, map[int]string{40: "OK", 48: "TX", 95: "TX"}, ds.StateNames)
	})

	t.Run("denylisted ids are excluded before reduction", func(t *testing.T) {
		ds, err := Normalize(table, []int{48})
		require.NoError(t, err)

		// TX survives through its next id once 48 is excluded.
		assert.Equal(t, []State{{ID: 40, Name: "OK"}, {ID: 95, Name: "TX"}}, ds.States)
	})

	t.Run("ids sharing a name alias to the canonical id", func(t *testing.T) {
		ds, err := Normalize(table, nil)
		require.NoError(t, err)

		assert.Equal(t, map[int]int{40: 40, 48: 48, 95: 48}, ds.StateAliases)
	})

	t.Run("aliases follow the denylist", func(t *testing.T) {
		ds, err := Normalize(table, []int{48})
		require.NoError(t, err)

		// With 48 excluded, 95 is canonical for TX and 48 aliases to it.
		assert.Equal(t, map[int]int{40: 40, 48: 95, 95: 95}, ds.StateAliases)
	})

	t.Run("counties dedup by full triple", func(t *testing.T) {
		ds, err := Normalize(table, nil)
		require.NoError(t, err)

		assert.Equal(t, []County{
			{StateID: 48, ID: 113, Name: "DALLAS"},
			{StateID: 95, ID: 113, Name: "DALLAS"},
			{StateID: 40, ID: 113, Name: "ADAIR"},
			{StateID: 40, ID: 1, Name: "ADAIR"},
		}, ds.Counties, "county id alone is not unique; the (state, id, name) triple is")
	})
}
