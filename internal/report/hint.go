package report

import (
	"fmt"
	"strings"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/source"
	"strait/internal/template"
	"strait/internal/types"
)

// renderHint expands the contract's "on unimplemented" hint for the
// failing reference. Authoring errors in the template are hard errors
// reported at the attribute, not at the use site, and they drop the hint
// for this diagnostic; the caller's main message stands alone.
func (r *Reporter) renderHint(tr obligation.TraitRef, span source.Span, sink diag.Reporter) (string, bool) {
	def := r.sess.Traits.Get(tr.Trait)
	if def == nil || def.Hint == nil {
		return "", false
	}
	hint := def.Hint

	attrSpan := hint.Span
	if attrSpan == (source.Span{}) {
		attrSpan = span
	}
	if !hint.HasValue {
		diag.ReportError(sink, diag.HintMissingValue, attrSpan,
			"the `on_unimplemented` attribute requires a value, e.g. `on_unimplemented = \"foo\"`").Emit()
		return "", false
	}

	env := make(map[string]string, len(def.Params)+1)
	env["Self"] = tr.SelfLabel(r.sess.Types)
	for i, p := range def.Params {
		if i < len(tr.Args) {
			env[p] = types.Label(r.sess.Types, tr.Args[i])
		} else {
			// Declared but unsubstituted parameters render as the
			// inference placeholder; only undeclared names are errors.
			env[p] = "_"
		}
	}

	var out strings.Builder
	errored := false
	for _, piece := range template.Parse(hint.Value) {
		switch piece.Kind {
		case template.PieceLiteral:
			out.WriteString(piece.Text)
		case template.PieceNamed:
			val, ok := env[piece.Text]
			if !ok {
				// Keep scanning: one pass reports every bad name.
				diag.ReportError(sink, diag.HintBadParam, attrSpan,
					fmt.Sprintf("there is no parameter `%s` on contract `%s`", piece.Text, def.Name)).Emit()
				errored = true
				continue
			}
			out.WriteString(val)
		case template.PiecePositional:
			diag.ReportError(sink, diag.HintPositionalArg, attrSpan,
				"only named substitution parameters are allowed").Emit()
			errored = true
		}
	}
	if errored {
		return "", false
	}
	return out.String(), true
}
