package batch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strait/internal/diag"
	"strait/internal/obligation"
	"strait/internal/report"
	"strait/internal/types"
)

func samplePayload() *Payload {
	return &Payload{
		Schema: SchemaVersion,
		Files: []FileEntry{
			{Path: "main.st", Content: []byte("let x = collect();\n")},
		},
		Types: []TypeEntry{
			// entry 0: int
			{Kind: uint8(types.KindInt)},
			// entry 1: Vec<int>
			{Kind: uint8(types.KindNamed), Name: "Vec", Args: []uint32{0}},
		},
		Traits: []TraitEntry{
			{Name: "Ord"},
		},
		Failures: []FailureEntry{
			{
				Kind:      uint8(obligation.FailSelection),
				Selection: uint8(obligation.SelUnimplemented),
				Pred: PredEntry{
					Kind:  uint8(obligation.PredTrait),
					Trait: TraitRefEntry{Trait: 0, Self: 1},
				},
				Span: SpanEntry{File: 0, Start: 8, End: 17},
				Cause: &CauseEntry{
					Kind: uint8(obligation.CauseItemObligation),
					Item: "fn sort",
				},
			},
		},
	}
}

func TestRoundTripAndRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.mp")
	require.NoError(t, Save(path, samplePayload()))

	p, err := Load(path)
	require.NoError(t, err)

	bag := diag.NewBag(16)
	sess, failures, err := p.Build(bag)
	require.NoError(t, err)
	require.Len(t, failures, 1)

	require.Nil(t, report.New(sess).Report(failures))
	items := bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.Unimplemented, items[0].Code)
	assert.Equal(t, "the contract `Ord` is not implemented for the type `Vec<int>`", items[0].Message)
	require.Len(t, items[0].Notes, 1)
	assert.Equal(t, "required by `fn sort`", items[0].Notes[0].Msg)
}

func TestLoadRejectsUnknownSchema(t *testing.T) {
	p := samplePayload()
	p.Schema = SchemaVersion + 1
	path := filepath.Join(t.TempDir(), "failures.mp")
	require.NoError(t, Save(path, p))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestBuildRejectsForwardTypeReference(t *testing.T) {
	p := samplePayload()
	// Vec's element now points at Vec itself.
	p.Types[1].Args = []uint32{1}

	_, _, err := p.Build(diag.NewBag(16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an earlier entry")
}

func TestBuildAppliesBindingsAndLimits(t *testing.T) {
	p := samplePayload()
	p.RecursionLimit = 99
	p.PriorErrors = true
	p.Types = append(p.Types, TypeEntry{Kind: uint8(types.KindInfer), Var: 5}) // 2: _5
	p.Bindings = []BindingEntry{{Var: 5, Type: 0}}

	bag := diag.NewBag(16)
	sess, _, err := p.Build(bag)
	require.NoError(t, err)

	assert.Equal(t, 99, sess.RecursionLimit)
	assert.True(t, sess.HasErrors())
	bound, ok := sess.Types.Binding(types.VarID(5))
	require.True(t, ok)
	assert.Equal(t, "int", types.Label(sess.Types, bound))
}
