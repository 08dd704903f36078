// Package tabclean cleans tabular data loaded from CSV-like sources: it
// normalizes whitespace and missing-value markers, repairs decimal commas,
// splits "number unit" cells into value and unit columns and converts the
// units into one canonical unit per physical quantity.
//
// # Architecture
//
// A run is a fixed sequence of five stages over an in-memory table:
//
// 1. Normalizer: blank cells become missing, headers and text are trimmed,
// rows and columns with nothing but missing cells are dropped.
//
// 2. Missing-value tagger: "NA", "n/a", "null", "none", "?", "-" and "."
// become missing, ignoring case.
//
// 3. Decimal repairer: "1,25" becomes 1.25 and columns that are then entirely
// numeric are re-typed.
//
// 4. Unit extractor: a column holding "12.5 mm" cells becomes length_value
// and length_unit columns in place.
//
// 5. Unit converter: every value/unit pair is rescaled into K, m, kg, s, Pa,
// N, J or the dimensionless 1.
//
// Every stage builds a new table and leaves its input alone, so the state
// after each stage can be kept and inspected.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/ajitpratap0/tabclean"
//	    "github.com/ajitpratap0/tabclean/pkg/config"
//	    "github.com/ajitpratap0/tabclean/pkg/table"
//	)
//
//	raw, err := table.FromRecords(header, rows)
//	if err != nil {
//	    return err
//	}
//
//	cleaner, err := tabclean.New(config.Default(), logger)
//	if err != nil {
//	    return err
//	}
//	defer cleaner.Close(ctx)
//
//	res, err := cleaner.Clean(ctx, raw)
//	// res.Table holds the cleaned table, res.Report the per-stage summary
//
// # Observability
//
// Stage durations and cleaning counts are exported as Prometheus metrics
// prefixed tabclean_. With tracing enabled each run and stage gets an
// OpenTelemetry span. Logging goes through zap.
package tabclean
