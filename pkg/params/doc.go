// Package params defines the tables exchanged between model introspection,
// scale-factor computation and coefficient rescaling.
//
// # Core Types
//
//   - [Table]: ordered parameter table (one row per coefficient) with
//     numeric estimate columns such as Coefficient, SE, CI_low and CI_high
//   - [ScaleFactors]: per-parameter candidate deviations, one predictor and
//     one response column per post-hoc method variant
//   - [Draws]: posterior draws, parameters as columns
//
// Parameter identity is the join key between a [Table] and a
// [ScaleFactors]. A scale-factor table may cover only some parameters;
// [ScaleFactors.Align] fills the gaps with [Missing] rows whose values are
// NaN, never zero.
//
// Tables are plain values. Functions that derive a new table call Clone
// first and never modify their input.
package params
