package batch

import (
	"github.com/pkg/errors"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/report"
	"strait/internal/source"
	"strait/internal/types"
)

// builder keeps the payload-index to interned-ID maps while decoding.
type builder struct {
	p       *Payload
	in      *types.Interner
	reg     *obligation.Registry
	fileIDs []source.FileID
	typeIDs []types.TypeID
	traits  []obligation.TraitID
}

// Build rebuilds the reporting session and the failure list from the
// payload. The bag receives everything the session later emits.
func (p *Payload) Build(bag *diag.Bag) (*report.Session, []obligation.Failure, error) {
	b := &builder{
		p:   p,
		in:  types.NewInterner(),
		reg: obligation.NewRegistry(),
	}

	fs := source.NewFileSet()
	b.fileIDs = make([]source.FileID, len(p.Files))
	for i, fe := range p.Files {
		b.fileIDs[i] = fs.Add(fe.Path, fe.Content, source.FileVirtual)
	}

	if err := b.internTypes(); err != nil {
		return nil, nil, err
	}
	if err := b.defineTraits(); err != nil {
		return nil, nil, err
	}
	for _, be := range p.Bindings {
		ty, err := b.typeAt(be.Type)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "binding for variable %d", be.Var)
		}
		b.in.BindVar(types.VarID(be.Var), ty)
	}

	failures := make([]obligation.Failure, len(p.Failures))
	for i := range p.Failures {
		f, err := b.failure(&p.Failures[i])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failure %d", i)
		}
		failures[i] = f
	}

	sess := report.NewSession(fs, b.in, b.reg, bag)
	if p.RecursionLimit > 0 {
		sess.RecursionLimit = p.RecursionLimit
	}
	if p.PriorErrors {
		sess.NoteExternalError()
	}
	return sess, failures, nil
}

// internTypes replays the type table in order. Entries reference earlier
// entries only, so one forward pass suffices.
func (b *builder) internTypes() error {
	b.typeIDs = make([]types.TypeID, len(b.p.Types))
	for i, te := range b.p.Types {
		kind := types.Kind(te.Kind)
		switch kind {
		case types.KindError, types.KindInfer, types.KindUnit, types.KindBool,
			types.KindInt, types.KindUint, types.KindFloat, types.KindString:
			b.typeIDs[i] = b.in.Intern(types.Type{
				Kind:  kind,
				Width: types.Width(te.Width), //nolint:gosec // validated widths only
				Var:   types.VarID(te.Var),
			})

		case types.KindArray:
			elem, err := b.typeAtBefore(te.Elem, i)
			if err != nil {
				return errors.Wrapf(err, "type entry %d", i)
			}
			b.typeIDs[i] = b.in.Intern(types.MakeArray(elem, te.Count))

		case types.KindReference:
			elem, err := b.typeAtBefore(te.Elem, i)
			if err != nil {
				return errors.Wrapf(err, "type entry %d", i)
			}
			b.typeIDs[i] = b.in.Intern(types.MakeReference(elem, types.RegionID(te.Region), te.Mutable))

		case types.KindNamed:
			args := make([]types.TypeID, len(te.Args))
			for j, a := range te.Args {
				arg, err := b.typeAtBefore(a, i)
				if err != nil {
					return errors.Wrapf(err, "type entry %d arg %d", i, j)
				}
				args[j] = arg
			}
			b.typeIDs[i] = b.in.Named(te.Name, args...)

		default:
			return errors.Errorf("type entry %d has unknown kind %d", i, te.Kind)
		}
	}
	return nil
}

func (b *builder) typeAtBefore(idx uint32, limit int) (types.TypeID, error) {
	if int(idx) >= limit {
		return types.NoTypeID, errors.Errorf("type reference %d is not an earlier entry", idx)
	}
	return b.typeIDs[idx], nil
}

func (b *builder) typeAt(idx uint32) (types.TypeID, error) {
	if int(idx) >= len(b.typeIDs) {
		return types.NoTypeID, errors.Errorf("type reference %d out of range", idx)
	}
	return b.typeIDs[idx], nil
}

func (b *builder) defineTraits() error {
	b.traits = make([]obligation.TraitID, len(b.p.Traits))
	for i, te := range b.p.Traits {
		def := obligation.TraitDef{Name: te.Name, Params: te.Params}
		if te.Hint != nil {
			span, err := b.span(te.Hint.Span)
			if err != nil {
				return errors.Wrapf(err, "contract %s hint", te.Name)
			}
			def.Hint = &obligation.HintAttr{
				Span:     span,
				Value:    te.Hint.Value,
				HasValue: te.Hint.HasValue,
			}
		}
		for _, ve := range te.Violations {
			def.Violations = append(def.Violations, obligation.Violation{
				Kind:       obligation.ViolationKind(ve.Kind),
				Method:     ve.Method,
				MethodKind: obligation.MethodViolation(ve.MethodKind),
			})
		}
		id := b.reg.Define(def)
		b.traits[i] = id
		if te.Sized {
			b.reg.MarkSized(id)
		}
	}
	return nil
}

func (b *builder) traitAt(idx uint32) (obligation.TraitID, error) {
	if int(idx) >= len(b.traits) {
		return obligation.NoTraitID, errors.Errorf("contract reference %d out of range", idx)
	}
	return b.traits[idx], nil
}

func (b *builder) span(se SpanEntry) (source.Span, error) {
	if int(se.File) >= len(b.fileIDs) {
		return source.Span{}, errors.Errorf("file reference %d out of range", se.File)
	}
	return source.Span{File: b.fileIDs[se.File], Start: se.Start, End: se.End}, nil
}

func (b *builder) traitRef(e TraitRefEntry) (obligation.TraitRef, error) {
	trait, err := b.traitAt(e.Trait)
	if err != nil {
		return obligation.TraitRef{}, err
	}
	self, err := b.typeAt(e.Self)
	if err != nil {
		return obligation.TraitRef{}, err
	}
	out := obligation.TraitRef{Trait: trait, Self: self}
	for _, a := range e.Args {
		arg, err := b.typeAt(a)
		if err != nil {
			return obligation.TraitRef{}, err
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

func (b *builder) predicate(e PredEntry) (obligation.Predicate, error) {
	kind := obligation.PredKind(e.Kind)
	out := obligation.Predicate{Kind: kind}
	var err error
	switch kind {
	case obligation.PredTrait:
		out.Trait, err = b.traitRef(e.Trait)
	case obligation.PredEquate:
		if out.A, err = b.typeAt(e.A); err == nil {
			out.B, err = b.typeAt(e.B)
		}
	case obligation.PredRegionOutlives:
		out.RA = types.RegionID(e.RA)
		out.RB = types.RegionID(e.RB)
	case obligation.PredTypeOutlives:
		out.RB = types.RegionID(e.RB)
		out.A, err = b.typeAt(e.A)
	case obligation.PredProjection:
		out.Proj.Assoc = e.Assoc
		if out.Proj.Trait, err = b.traitRef(e.Trait); err == nil {
			out.Proj.Ty, err = b.typeAt(e.Ty)
		}
	case obligation.PredWellFormed:
		out.WF, err = b.typeAt(e.WF)
	case obligation.PredObjectSafe:
		out.Obj, err = b.traitAt(e.Obj)
	default:
		err = errors.Errorf("unknown predicate kind %d", e.Kind)
	}
	return out, err
}

func (b *builder) cause(e *CauseEntry) (*obligation.CauseCode, error) {
	if e == nil {
		return nil, nil
	}
	out := &obligation.CauseCode{
		Kind:       obligation.CauseKind(e.Kind),
		Item:       e.Item,
		Var:        e.Var,
		Capability: e.Capability,
	}
	var err error
	switch out.Kind {
	case obligation.CauseMigration:
		out.Sub, err = b.cause(e.Sub)
	case obligation.CauseProjectionWF, obligation.CauseReferenceOutlivesReferent, obligation.CauseObjectCast:
		out.Type, err = b.typeAt(e.Type)
	case obligation.CauseBuiltinDerived, obligation.CauseImplDerived:
		if out.ParentTrait, err = b.traitRef(e.ParentTrait); err == nil {
			out.Parent, err = b.cause(e.Parent)
		}
	}
	return out, err
}

func (b *builder) failure(e *FailureEntry) (obligation.Failure, error) {
	pred, err := b.predicate(e.Pred)
	if err != nil {
		return obligation.Failure{}, err
	}
	span, err := b.span(e.Span)
	if err != nil {
		return obligation.Failure{}, err
	}
	code, err := b.cause(e.Cause)
	if err != nil {
		return obligation.Failure{}, err
	}

	out := obligation.Failure{
		Kind:      obligation.FailureKind(e.Kind),
		Selection: obligation.SelectionKind(e.Selection),
		Detail:    e.Detail,
		Obligation: obligation.Obligation{
			Predicate: pred,
			Cause:     obligation.Cause{Span: span, Code: code},
		},
	}
	if e.Kind == uint8(obligation.FailSelection) && e.Selection == uint8(obligation.SelOutputTypeMismatch) {
		if out.Expected, err = b.traitRef(e.Expected); err != nil {
			return obligation.Failure{}, err
		}
		if out.Actual, err = b.traitRef(e.Actual); err != nil {
			return obligation.Failure{}, err
		}
	}
	if e.Kind == uint8(obligation.FailSelection) && e.Selection == uint8(obligation.SelNotObjectSafe) {
		if out.Obj, err = b.traitAt(e.Obj); err != nil {
			return obligation.Failure{}, err
		}
	}
	return out, nil
}
