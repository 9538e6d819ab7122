// Package diag defines the core diagnostic model shared by the obligation
// reporter and its drivers.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced while explaining contract-obligation failures.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting
//     layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; classification of
// obligation failures lives in internal/report.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in
//     severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string
//     form. The E-numbers are a published contract: once a number has a
//     meaning it keeps it.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – ordered secondary spans/messages. The obligation reporter
//     uses them for "required because ..." cause chains and object-safety
//     violation lists, so note order is meaningful and preserved
//     everywhere.
//
// # Emitting diagnostics
//
// Producers use a diag.Reporter to decouple emission from storage. The
// obligation reporter constructs a ReportBuilder via ReportError /
// ReportWarning, chains WithNote for each cause-chain entry, then calls
// Emit. diag.BagReporter aggregates diagnostics into a Bag, which supports
// merging and deterministic sorting.
//
// Fatal is the distinguished "abort compilation" value; see fatal.go.
package diag
