// Package encoding converts player, roster, and game records into
// fixed-length float32 feature vectors for the prediction model.
//
// Every encoder emits a vector whose length depends only on its kind,
// never on how much of the input is populated: player vectors are
// PlayerFeatures wide, roster vectors RosterFeatures, game context
// ContextFeatures, and play state PlayStateFeatures. Composition is pure
// concatenation with documented offsets.
//
// Inputs are Record documents (JSON-shaped nested maps). Missing or
// uncoercible scalars fall back to per-field defaults silently; a record
// that is absent altogether degrades to a full-width zero vector and a
// sentinel error, so consumers always receive well-shaped input. Only the
// compositors fail hard, since a wrong-length constituent vector indicates
// a caller defect rather than missing data.
//
// All functions are pure and safe for concurrent use. Categorical string
// codes use an unsalted FNV-1a hash so the same string maps to the same
// code in every process and run.
package encoding
