package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessCopyDocSplicesTarget(t *testing.T) {
	graph := NewMemGraph()
	graph.Members["foo"] = &Member{Name: "foo", Brief: "Foo brief.", Detailed: "Foo detailed."}
	sink := NewRecordingSink(SilentSink())
	stack := &CopyStack{}

	out := PreprocessCopyDoc("See \\copydoc foo for more.", graph, stack, sink, "f.cpp", 1)
	assert.Contains(t, out, "Foo brief.")
	assert.Contains(t, out, "Foo detailed.")
	assert.Empty(t, sink.Errors())
}

func TestPreprocessCopyDocDetectsCycle(t *testing.T) {
	graph := NewMemGraph()
	graph.Members["a"] = &Member{Name: "a", Brief: "calls \\copydoc b"}
	graph.Members["b"] = &Member{Name: "b", Brief: "calls \\copydoc a"}
	sink := NewRecordingSink(SilentSink())
	stack := &CopyStack{}

	PreprocessCopyDoc("\\copydoc a", graph, stack, sink, "f.cpp", 1)
	require.NotEmpty(t, sink.Errors())
	assert.Equal(t, ErrCopyCycle, sink.Errors()[0].Kind)
	assert.Empty(t, stack.names, "cycle stack must be fully unwound")
}

func TestPreprocessCopyDocUnresolvedTarget(t *testing.T) {
	graph := NewMemGraph()
	sink := NewRecordingSink(SilentSink())
	stack := &CopyStack{}

	PreprocessCopyDoc("\\copydoc missing", graph, stack, sink, "f.cpp", 1)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrUnresolvedRef, sink.Errors()[0].Kind)
}

func TestExtractCopyTargetHandlesParensAndQualifiers(t *testing.T) {
	target, n := extractCopyTarget("Foo::bar(int x) const trailing text")
	assert.Equal(t, "Foo::bar(int x) const", target)
	assert.True(t, n > 0)
}

func TestInheritDocNoReimplements(t *testing.T) {
	_, ok := InheritDoc(NewMemGraph(), &Member{Name: "x"})
	assert.False(t, ok)
}

func TestInheritDocResolves(t *testing.T) {
	graph := NewMemGraph()
	graph.Members["Base::m"] = &Member{Name: "m", Brief: "base brief", Detailed: "base detail"}
	text, ok := InheritDoc(graph, &Member{Name: "m", Reimplements: "Base::m"})
	require.True(t, ok)
	assert.Contains(t, text, "base brief")
	assert.Contains(t, text, "base detail")
}
