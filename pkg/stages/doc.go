// Package stages implements the five cleaning stages of the tabclean
// pipeline, in the order they run:
//
//  1. Normalizer: blank cells become missing, headers and text cells are
//     trimmed, all-missing rows and columns are pruned.
//  2. MissingTagger: textual missing-value sentinels become missing.
//  3. DecimalRepairer: decimal commas become points and columns that then
//     parse entirely as numbers are re-typed as numeric.
//  4. UnitExtractor: text columns holding "number unit" cells are split into
//     <name>_value and <name>_unit columns.
//  5. UnitConverter: every value/unit pair is rescaled into the canonical
//     unit of its category.
//
// Each stage is a pure function from table to table exposed twice: as a plain
// function (BlankToMissing, TagMissing, RepairDecimals, ExtractUnits,
// ConvertUnits, ...) and as a stage type with Name and Apply for the pipeline
// runner. Stages never mutate their input. Per-cell failures degrade to a
// missing or untouched cell; only shape and naming violations are errors.
//
// # Basic Usage
//
//	out, err := stages.NewNormalizer(logger).Apply(ctx, raw)
//	out, err = stages.NewMissingTagger(logger).Apply(ctx, out)
//
// Counts that are not part of the returned table (dropped rows, tagged
// cells, converted values) are logged through zap and recorded in
// pkg/metrics.
package stages

// Stage names as reported by Name
const (
	NameNormalize      = "normalize"
	NameTagMissing     = "tag_missing"
	NameRepairDecimals = "repair_decimals"
	NameExtractUnits   = "extract_units"
	NameConvertUnits   = "convert_units"
)
