package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-harm-report/internal/adapter/csvfile"
	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

// maxReportedIDErrors caps how many bad identifier cells one phase lists;
// beyond that only the total is useful.
const maxReportedIDErrors = 10

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

var validateCmd = &cobra.Command{
	Use:   "validate <input.csv[.gz|.bz2]>",
	Short: "Check an input file's schema and data quality without building reports",
	Long: `Runs three phases against the input: required columns are present,
identifier columns coerce to integers, and damage magnitude codes are
recognized. The first two are the fatal conditions a report run would hit;
the third only degrades damage figures. Exits non-zero when a fatal phase
fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := csvfile.NewReader(args[0], cfg.CommaRune(), logger).ExtractTable(cmd.Context())
		if err != nil {
			return err
		}

		return runPhases(cmd.OutOrStdout(), []*phase{
			validateSchema(table),
			validateIdentifiers(table),
			validateMagnitudeCodes(table),
		})
	},
}

// runPhases prints one PASS/FAIL line per phase with its errors. Unrecognized
// magnitude codes degrade, they do not abort, so the quality phase alone
// never fails validation; the schema and identifier phases are fatal.
func runPhases(out io.Writer, phases []*phase) error {
	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Fprintf(out, "PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}

	if !phases[0].passed() || !phases[1].passed() {
		return fmt.Errorf("validation failed: %d of %d phases", failed, len(phases))
	}
	return nil
}

// validateSchema checks that every column the normalizer selects is present
// by name.
func validateSchema(t *domain.Table) *phase {
	p := &phase{name: "schema"}
	for _, name := range domain.RequiredColumns() {
		if _, ok := t.Column(name); !ok {
			p.errorf("required column %q is missing", name)
		}
	}
	return p
}

// validateIdentifiers checks that the id columns coerce; these are the cells
// that would abort a report run.
func validateIdentifiers(t *domain.Table) *phase {
	p := &phase{name: "identifiers"}
	for _, name := range []string{domain.ColStateID, domain.ColCountyID} {
		col, ok := t.Column(name)
		if !ok {
			continue // schema phase already reports it
		}
		bad := 0
		for row, cell := range col {
			if _, ok := domain.CoerceID(cell); !ok {
				bad++
				if bad <= maxReportedIDErrors {
					p.errorf("column %q row %d: %q is not a numeric identifier", name, row, cell)
				}
			}
		}
		if bad > maxReportedIDErrors {
			p.errorf("column %q: %d bad identifiers in total", name, bad)
		}
	}
	return p
}

// validateMagnitudeCodes tallies unrecognized damage magnitude codes per
// exponent column.
func validateMagnitudeCodes(t *domain.Table) *phase {
	p := &phase{name: "magnitude codes"}
	for _, name := range []string{domain.ColPropDamageExp, domain.ColCropDamageExp} {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		counts := make(map[string]int)
		for _, cell := range col {
			if _, ok := domain.ScaleFactor(cell); !ok {
				counts[cell]++
			}
		}
		codes := make([]string, 0, len(counts))
		for code := range counts {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			p.errorf("column %q: unrecognized code %q on %d rows (scale factor would default to 1)", name, code, counts[code])
		}
	}
	return p
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
