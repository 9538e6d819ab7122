package report

import (
	"fmt"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/source"
)

// objectSafetyBuilder starts the "cannot be made into an object"
// diagnostic and appends one note per distinct recorded violation. The
// solver may discover the same violation along several paths; rendering
// collapses them by value, preserving first-seen order.
func (r *Reporter) objectSafetyBuilder(sev diag.Severity, span source.Span, trait obligation.TraitID, sink diag.Reporter) *diag.ReportBuilder {
	b := diag.NewReportBuilder(sink, sev, diag.NotObjectSafe, span,
		fmt.Sprintf("the contract `%s` cannot be made into an object", r.sess.Traits.Name(trait)))

	seen := make(map[obligation.Violation]struct{})
	for _, v := range r.sess.Traits.Violations(trait) {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		b.WithNote(span, violationNote(v))
	}
	return b
}

func violationNote(v obligation.Violation) string {
	switch v.Kind {
	case obligation.ViolationSizedSelf:
		return "the contract cannot require that `Self` has a statically known size"
	case obligation.ViolationSupertraitSelf:
		return "the contract cannot use `Self` as a type parameter in its supercontract listing"
	case obligation.ViolationMethod:
		switch v.MethodKind {
		case obligation.MethodNoReceiver:
			return fmt.Sprintf("method `%s` has no receiver", v.Method)
		case obligation.MethodReferencesSelf:
			return fmt.Sprintf("method `%s` references the `Self` type in its arguments or return type", v.Method)
		case obligation.MethodGenerics:
			return fmt.Sprintf("method `%s` has generic type parameters", v.Method)
		}
	}
	return "the contract is not object safe"
}
