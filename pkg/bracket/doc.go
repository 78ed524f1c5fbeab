// Package bracket generates the structural skeleton of a double-elimination
// tournament bracket.
//
// # Overview
//
// Given a single capacity (the "round of N" the bracket accommodates), the
// package derives every match slot of the winners and losers brackets, a 2D
// position for each slot, and the progression edges that say where the winner
// (or loser) of a match goes next. Nothing here tracks results: the score,
// completion and scheduling fields of a [Match] are placeholders for the tool
// that later ingests the bracket.
//
// # Generation
//
// [Generate] is the usual entry point:
//
//	b, err := bracket.Generate(16, bracket.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, m := range b.Matches { ... }
//	for _, p := range b.Progressions { ... }
//
// Internally generation runs in two passes. [Build] walks the stages, creating
// Winners matches and then the losers groups of each stage, and records every
// id in a [Registry] keyed by stage and [Group]. [Link] reads the registry and
// emits the [Progression] edges. Both passes are exposed so callers can inspect
// the registry (the preview command does).
//
// # Losers Bracket Sizing
//
// Stage s creates one losers group of numMatches/2 slots when s%3 == 0, and
// two groups ([LosersUpper] of numMatches, [LosersLower] of numMatches/2)
// otherwise. This rule is kept as-is for parity with the spreadsheets it was
// first used with. It links cleanly for capacities up to 16; from 32 upward
// the linker is asked for losers slots that were never created. [Link] reports
// those as [ErrUnlinkedSlot] unless [Options.Lenient] is set, in which case the
// edge is skipped and reported through [Options.Logger].
//
// # Layout
//
// Positions come from a [Layouter]. [GridLayout] places the winners bracket
// left to right by stage with vertical spacing doubling each stage, and the
// losers bracket in a parallel column set below and to the right. Positions
// are cosmetic and never affect ids or edges.
//
// # Concurrency
//
// Generation is pure and deterministic: the same capacity and layout produce
// identical output. A [Bracket] is not mutated after generation and can be
// shared between goroutines.
package bracket
