package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

var (
	genmockOut  string
	genmockRows int
	genmockSeed int64
)

// Event type spellings mirror the real export's inconsistency: mixed case
// (merged by title-casing) and distinct near-duplicates (kept distinct).
var mockEventTypes = []string{
	"TORNADO", "Tornado",
	"TSTM WIND", "THUNDERSTORM WIND",
	"HAIL", "FLASH FLOOD", "FLOOD", "EXCESSIVE HEAT",
	"HIGH WIND", "LIGHTNING", "WINTER STORM",
}

// mockStates includes a duplicate-name collision (id 95 also reports "TX")
// so the canonical-state reduction is exercised by generated fixtures.
var mockStates = []struct {
	id   int
	name string
}{
	{1, "AL"}, {6, "CA"}, {12, "FL"}, {20, "KS"}, {40, "OK"}, {48, "TX"}, {95, "TX"},
}

var mockCounties = []string{"ADAIR", "BAXTER", "CANADIAN", "DALLAS", "ELLIS"}

// mockMagnitudeCodes skews toward valid codes but includes the stray values
// seen in the real file.
var mockMagnitudeCodes = []string{"", "K", "K", "K", "M", "m", "B", "?", "0"}

var genmockCmd = &cobra.Command{
	Use:   "genmock",
	Short: "Generate a deterministic synthetic Storm Events CSV fixture",
	Long: `Writes a synthetic input file with the real export's header and quirks:
float-formatted identifiers, mixed-case event spellings, duplicate state ids,
and stray magnitude codes. Deterministic for a given seed, so fixtures are
reproducible across test suites.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if genmockRows <= 0 {
			return fmt.Errorf("rows must be positive, got %d", genmockRows)
		}

		f, err := os.Create(genmockOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", genmockOut, err)
		}
		defer f.Close()

		var w *csv.Writer
		var gz *gzip.Writer
		if strings.HasSuffix(genmockOut, ".gz") {
			gz = gzip.NewWriter(f)
			w = csv.NewWriter(gz)
		} else {
			w = csv.NewWriter(f)
		}

		if err := writeMockRows(w, genmockRows, rand.New(rand.NewSource(genmockSeed))); err != nil {
			return fmt.Errorf("write %s: %w", genmockOut, err)
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("write %s: %w", genmockOut, err)
		}
		if gz != nil {
			if err := gz.Close(); err != nil {
				return fmt.Errorf("write %s: %w", genmockOut, err)
			}
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", genmockOut, err)
		}

		logger.Info("mock fixture written", "path", genmockOut, "rows", genmockRows, "seed", genmockSeed)
		return nil
	},
}

func writeMockRows(w *csv.Writer, rows int, rng *rand.Rand) error {
	header := []string{
		domain.ColStateID, domain.ColStateName, domain.ColCountyID, domain.ColCountyName,
		domain.ColBeginDate, "BGN_TIME", domain.ColEventType,
		"LENGTH", "WIDTH", "F", "REMARKS",
		domain.ColFatalities, domain.ColInjuries,
		domain.ColPropDamage, domain.ColPropDamageExp,
		domain.ColCropDamage, domain.ColCropDamageExp,
	}
	if err := w.Write(header); err != nil {
		return err
	}

	base := time.Date(1950, time.January, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		st := mockStates[rng.Intn(len(mockStates))]
		date := base.AddDate(0, 0, rng.Intn(20000))
		rec := []string{
			fmt.Sprintf("%d.00", st.id),
			st.name,
			fmt.Sprintf("%d.00", 1+rng.Intn(120)),
			mockCounties[rng.Intn(len(mockCounties))],
			date.Format("1/2/2006") + " 0:00:00",
			fmt.Sprintf("%02d%02d", rng.Intn(24), rng.Intn(60)),
			mockEventTypes[rng.Intn(len(mockEventTypes))],
			"0", "0", "", "",
			strconv.Itoa(rng.Intn(4)),
			strconv.Itoa(rng.Intn(20)),
			strconv.FormatFloat(float64(rng.Intn(1000))/10, 'f', 1, 64),
			mockMagnitudeCodes[rng.Intn(len(mockMagnitudeCodes))],
			strconv.FormatFloat(float64(rng.Intn(500))/10, 'f', 1, 64),
			mockMagnitudeCodes[rng.Intn(len(mockMagnitudeCodes))],
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	genmockCmd.Flags().StringVar(&genmockOut, "out", "stormdata_mock.csv", "output path (.gz compresses)")
	genmockCmd.Flags().IntVar(&genmockRows, "rows", 1000, "number of data rows")
	genmockCmd.Flags().Int64Var(&genmockSeed, "seed", 1, "RNG seed")
	rootCmd.AddCommand(genmockCmd)
}
