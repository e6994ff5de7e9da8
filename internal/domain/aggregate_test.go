package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeHealth(t *testing.T) {
	t.Run("totals per event group", func(t *testing.T) {
		records := []StormRecord{
			{Event: "Tornado", Fatalities: 1, Injuries: 0},
			{Event: "Tornado", Fatalities: 0, Injuries: 5},
			{Event: "Tornado", Fatalities: 2, Injuries: 0},
		}

		rows := SummarizeHealth(records)
		require.Len(t, rows, 1)
		assert.Equal(t, HealthSummaryRow{
			Event:      "Tornado",
			Events:     3,
			Fatalities: 3,
			Injuries:   5,
			TotalHarm:  8,
		}, rows[0])
	})

	t.Run("sorted descending by total harm", func(t *testing.T) {
		records := []StormRecord{
			{Event: "Hail", Injuries: 1},
			{Event: "Tornado", Fatalities: 3, Injuries: 4},
			{Event: "Flood", Fatalities: 2},
		}

		rows := SummarizeHealth(records)
		require.Len(t, rows, 3)
		assert.Equal(t, "Tornado", rows[0].Event)
		assert.Equal(t, "Flood", rows[1].Event)
		assert.Equal(t, "Hail", rows[2].Event)
	})

	t.Run("ties keep first-encounter order", func(t *testing.T) {
		records := []StormRecord{
			{Event: "Lightning", Injuries: 2},
			{Event: "Avalanche", Injuries: 2},
			{Event: "Blizzard", Injuries: 2},
		}

		rows := SummarizeHealth(records)
		got := []string{rows[0].Event, rows[1].Event, rows[2].Event}
		assert.Equal(t, []string{"Lightning", "Avalanche", "Blizzard"}, got,
			"tie-break decides top-N membership, so it is a contract")
	})
}

func TestSummarizeEconomic(t *testing.T) {
	records := []StormRecord{
		{Event: "Flood", PropertyDamage: 1000, CropDamage: 500},
		{Event: "Flood", PropertyDamage: 200},
		{Event: "Drought", CropDamage: 5000},
	}

	rows := SummarizeEconomic(records)
	require.Len(t, rows, 2)

	assert.Equal(t, EconomicSummaryRow{
		Event:       "Drought",
		Events:      1,
		CropDamage:  5000,
		TotalDamage: 5000,
	}, rows[0])
	assert.Equal(t, EconomicSummaryRow{
		Event:          "Flood",
		Events:         2,
		PropertyDamage: 1200,
		CropDamage:     500,
		TotalDamage:    1700,
	}, rows[1])
}

func TestSummarizeStates(t *testing.T) {
	names := map[int]string{48: "TX", 40: "OK"}

	t.Run("damage scaled to tens of thousands", func(t *testing.T) {
		records := []StormRecord{
			{StateID: 48, PropertyDamage: 30000, CropDamage: 20000, Fatalities: 1},
			{StateID: 48, Injuries: 2},
		}

		rows := SummarizeStates(records, nil, names)
		require.Len(t, rows, 1)
		assert.Equal(t, StateSummaryRow{
			StateID:      48,
			StateName:    "TX",
			Events:       2,
			DamageScaled: 5.0,
			Fatalities:   1,
			Injuries:     2,
		}, rows[0])
	})

	t.Run("sorted descending by event count with stable ties", func(t *testing.T) {
		records := []StormRecord{
			{StateID: 40}, {StateID: 48}, {StateID: 48}, {StateID: 6},
		}

		rows := SummarizeStates(records, nil, names)
		require.Len(t, rows, 3)
		assert.Equal(t, 48, rows[0].StateID)
		assert.Equal(t, 40, rows[1].StateID, "tie with state 6 broken by encounter order")
		assert.Equal(t, 6, rows[2].StateID)
	})

	t.Run("unknown state id gets a placeholder name", func(t *testing.T) {
		rows := SummarizeStates([]StormRecord{{StateID: 99}}, nil, names)
		require.Len(t, rows, 1)
		assert.Equal(t, "State 99", rows[0].StateName)
	})

	t.Run("aliased ids fold into one group", func(t *testing.T) {
		collided := map[int]string{48: "TX", 95: "TX"}
		aliases := map[int]int{48: 48, 95: 48}
		records := []StormRecord{
			{StateID: 48, Fatalities: 1, PropertyDamage: 10000},
			{StateID: 95, Injuries: 3, CropDamage: 10000},
		}

		rows := SummarizeStates(records, aliases, collided)
		require.Len(t, rows, 1)
		assert.Equal(t, StateSummaryRow{
			StateID:      48,
			StateName:    "TX",
			Events:       2,
			DamageScaled: 2.0,
			Fatalities:   1,
			Injuries:     3,
		}, rows[0])
	})
}
