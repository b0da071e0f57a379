package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXmlSummaryParsesAsPlainContent(t *testing.T) {
	root := parseSilent(t, "<summary>Short description.</summary>")
	words := collectWords(root, root.RootIdx)
	assert.Equal(t, []string{"Short", "description."}, words)
}

func TestXmlParamFeedsValidationPass(t *testing.T) {
	owner := &Member{Name: "f", Args: []string{"int x", "int y"}}
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()

	root := ParseDoc(cfg, graph, "f.cs", 1, "", owner, `<param name="x">the x</param>`)
	idx := firstOfKind(root, root.RootIdx, NParamSect)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, []string{"x"}, root.Node(idx).Names)

	require.Len(t, sink.Errors(), 1)
	assert.Contains(t, sink.Errors()[0].Message, "parameter 'y'")
}

func TestXmlReturnsCountsAsReturnDoc(t *testing.T) {
	owner := &Member{Name: "sum", Args: nil, ReturnType: "int"}
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()

	root := ParseDoc(cfg, graph, "f.cs", 1, "", owner, "<returns>the sum</returns>")
	idx := firstOfKind(root, root.RootIdx, NSimpleSect)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, SSReturn, root.Node(idx).SSKind)
	assert.Empty(t, sink.Errors())
}

func TestXmlSeeCrefResolvesRef(t *testing.T) {
	graph := NewMemGraph()
	graph.Compounds["Widget"] = &Compound{Name: "Widget", File: "widget_8h"}
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink

	root := ParseDoc(cfg, graph, "f.cs", 1, "", nil, `See <see cref="Widget"/> for details.`)
	idx := firstOfKind(root, root.RootIdx, NRef)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "Widget", root.Node(idx).Target)
	assert.Empty(t, sink.Errors())
}

func TestXmlListBecomesOrderedHtmlList(t *testing.T) {
	input := `<list type="number"><item><term>T</term><description>D</description></item></list>`
	root := parseSilent(t, input)
	listIdx := firstOfKind(root, root.RootIdx, NHtmlList)
	require.GreaterOrEqual(t, listIdx, 0)
	assert.Equal(t, HtmlOrdered, root.Node(listIdx).ListKind)

	items := root.ChildrenOf(listIdx)
	require.Len(t, items, 1)
	assert.GreaterOrEqual(t, firstOfKindIn(root, items[0], NHtmlDescTitle), 0)
	assert.GreaterOrEqual(t, firstOfKindIn(root, items[0], NHtmlDescData), 0)
}

func TestXmlParamrefRendersNameInCodeStyle(t *testing.T) {
	root := parseSilent(t, `uses <paramref name="x"/> here`)
	words := collectWords(root, root.RootIdx)
	assert.Contains(t, words, "x")

	styled := false
	for i := range root.Arena.Nodes {
		n := &root.Arena.Nodes[i]
		if n.Kind == NStyleChange && n.Style == StyleCode && n.Enter {
			styled = true
		}
	}
	assert.True(t, styled)
}
