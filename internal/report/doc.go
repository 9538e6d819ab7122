// Package report turns the solver's classified obligation failures into
// user diagnostics.
//
// The package splits the work into two phases with different contracts.
// Admission (Session.Admit) is stateful and strictly sequential: it
// deduplicates failures by severity class, span and normalized predicate
// structure, and snapshots the session state the renderer will need.
// Rendering (Reporter.Render) is stateless with respect to the session
// and writes only to the sink it is handed, so admitted failures may be
// rendered concurrently into separate bags and merged back in admission
// order.
//
// A non-nil *diag.Fatal return from Render means the diagnostic stream
// is no longer trustworthy (overflow, or an internal inconsistency) and
// the caller must stop reporting for this unit.
package report
