package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skybatch/weather-etl/internal/adapter/csvfile"
	"github.com/skybatch/weather-etl/internal/domain"
	"github.com/skybatch/weather-etl/internal/observability"
	"github.com/skybatch/weather-etl/internal/pipeline"
)

// errValidationFailed carries the nonzero exit through cobra's error path so
// deferred cleanup still runs; the report has already been printed.
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:           "validate",
	Short:         "Check an input CSV against the pipeline's invariants without writing outputs",
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if code := runValidation(ctx); code != 0 {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// runValidation executes each stage separately so a failure can be pinned to
// the phase that broke, rather than surfacing only the first pipeline error.
func runValidation(ctx context.Context) int {
	metrics := observability.NewMetricsForTesting()
	logger := rootLogger

	fmt.Println("=== Weather Data Integrity Validation ===")
	fmt.Println()

	raw, err := csvfile.Read(appConfig.Input.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 1
	}

	loadPhase := &phase{name: "Phase 1: Schema (required columns)"}
	loader := pipeline.NewCSVLoader(appConfig.Input, logger, metrics)
	loaded, err := loader.Load(ctx, raw)
	if err != nil {
		loadPhase.errorf("%v", err)
		return printReport(raw, nil, []*phase{loadPhase})
	}

	cleanPhase := &phase{name: "Phase 2: Cleaning (dates, imputation)"}
	cleaned, err := pipeline.NewMedianCleaner(logger, metrics).Clean(ctx, loaded)
	if err != nil {
		cleanPhase.errorf("%v", err)
		return printReport(raw, nil, []*phase{loadPhase, cleanPhase})
	}
	for i := range cleaned.Records {
		rec := &cleaned.Records[i]
		if rec.Date.IsZero() {
			cleanPhase.errorf("record %d: missing date survived cleaning", i)
		}
		if rec.City == "" {
			cleanPhase.errorf("record %d: missing city survived cleaning", i)
		}
		for _, col := range domain.NumericColumns() {
			if cleaned.Schema.Has(col) && rec.Numeric(col) == nil {
				cleanPhase.errorf("record %d: %s not imputed", i, col)
			}
		}
	}

	transformPhase := &phase{name: "Phase 3: Transformation (derived fields)"}
	transformed, err := pipeline.NewDeriveTransformer(logger, metrics).Transform(ctx, cleaned)
	if err != nil {
		transformPhase.errorf("%v", err)
		return printReport(raw, nil, []*phase{loadPhase, cleanPhase, transformPhase})
	}
	for i := range transformed.Records {
		rec := &transformed.Records[i]
		if rec.Condition == domain.ConditionUnknown {
			transformPhase.errorf("record %d: Unknown condition survived", i)
		}
		if rec.TemperatureC != nil {
			want := domain.CelsiusToFahrenheit(*rec.TemperatureC)
			if rec.TemperatureF == nil || *rec.TemperatureF != want {
				transformPhase.errorf("record %d: fahrenheit inconsistent with %v°C", i, *rec.TemperatureC)
			}
		}
	}

	finalPhase := &phase{name: "Phase 4: Final invariants"}
	validated, err := pipeline.NewTableValidator(logger, metrics).Validate(ctx, transformed)
	if err != nil {
		finalPhase.errorf("%v", err)
	}

	return printReport(raw, &validated, []*phase{loadPhase, cleanPhase, transformPhase, finalPhase})
}

func printReport(raw domain.RawTable, final *domain.Table, phases []*phase) int {
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	if final != nil {
		fmt.Printf("Records: %d input, %d validated\n", len(raw.Rows), final.Len())
	} else {
		fmt.Printf("Records: %d input\n", len(raw.Rows))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}
