package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRcsTagReparsesAsTitledSimpleSect(t *testing.T) {
	root := parseSilent(t, "Some text.\n$Id: file.cpp,v 1.2 2020/01/01 user Exp $\nMore text.")
	idx := firstOfKind(root, root.RootIdx, NSimpleSect)
	require.GreaterOrEqual(t, idx, 0)
	n := root.Node(idx)
	assert.Equal(t, SSRcs, n.SSKind)
	require.True(t, n.HasTitle)
	assert.Equal(t, "Id", root.Node(n.SSTitle).Title)

	words := collectWords(root, idx)
	assert.Contains(t, words, "file.cpp,v")
}

func TestXrefItemRegistersIntoNamedList(t *testing.T) {
	cfg := NewConfiguration().Silent()
	graph := NewMemGraph()
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\xrefitem todo \"Todo\" \"Todo List\" fix this later")
	require.NotNil(t, root.XRefLists)
	items := root.XRefLists["todo"]
	require.Len(t, items, 1)
	assert.Equal(t, "Todo", items[0].Title)
}

func TestFormulaCarriesIDAndReusesCachedText(t *testing.T) {
	graph := NewMemGraph()
	graph.Formulas["x^2"] = &Formula{Key: "x^2", Text: "x^2 (rendered)"}
	cfg := NewConfiguration().Silent()
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\f$x^2\\f$")
	idx := firstOfKind(root, root.RootIdx, NFormula)
	require.GreaterOrEqual(t, idx, 0)
	n := root.Node(idx)
	assert.Equal(t, "x^2", n.FormulaID)
	assert.Equal(t, "x^2 (rendered)", n.FormulaText)
}

func TestLinkCommandResolvesAgainstGraph(t *testing.T) {
	graph := NewMemGraph()
	graph.Compounds["Widget"] = &Compound{Name: "Widget", File: "widget_8h"}
	cfg := NewConfiguration().Silent()
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\link Widget widget text\\endlink")
	idx := firstOfKind(root, root.RootIdx, NLink)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "widget_8h", root.Node(idx).RefFile)
}

func TestLinkCommandUnresolvedReportsError(t *testing.T) {
	graph := NewMemGraph()
	sink := NewRecordingSink(SilentSink())
	cfg := NewConfiguration()
	cfg.Sink = sink
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\link Nope text\\endlink")
	require.NotNil(t, root)
	found := false
	for _, e := range sink.Errors() {
		if e.Kind == ErrUnresolvedRef {
			found = true
		}
	}
	assert.True(t, found)
}
