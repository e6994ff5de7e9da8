package main

import (
	"bytes"
	"encoding/csv"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

func TestWriteMockRows(t *testing.T) {
	generate := func(seed int64, rows int) []byte {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		require.NoError(t, writeMockRows(w, rows, rand.New(rand.NewSource(seed))))
		w.Flush()
		require.NoError(t, w.Error())
		return buf.Bytes()
	}

	t.Run("deterministic for a seed", func(t *testing.T) {
		assert.Equal(t, generate(7, 50), generate(7, 50))
		assert.NotEqual(t, generate(7, 50), generate(8, 50))
	})

	t.Run("output normalizes cleanly", func(t *testing.T) {
		r := csv.NewReader(bytes.NewReader(generate(1, 200)))
		records, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 201)

		table, err := domain.NewTable(records[0])
		require.NoError(t, err)
		for _, rec := range records[1:] {
			require.NoError(t, table.AppendRow(rec))
		}

		ds, err := domain.Normalize(table, nil)
		require.NoError(t, err, "generated ids must always coerce")
		assert.Len(t, ds.Records, 200)

		// The duplicate TX id collapses in the canonical table but stays
		// observable in the name map.
		for _, st := range ds.States {
			assert.NotEqual(t, 95, st.ID)
		}
	})
}
