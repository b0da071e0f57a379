package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parasOf(r *Root, parent int) []int {
	var out []int
	for _, c := range r.ChildrenOf(parent) {
		if r.Node(c).Kind == NPara {
			out = append(out, c)
		}
	}
	return out
}

func TestBoldSpansParagraphBreak(t *testing.T) {
	root := parseSilent(t, "Hello <b>world\n\nnext</b> line")
	paras := parasOf(root, root.RootIdx)
	require.Len(t, paras, 2)

	first := root.ChildrenOf(paras[0])
	require.NotEmpty(t, first)
	last := root.Node(first[len(first)-1])
	assert.Equal(t, NStyleChange, last.Kind)
	assert.Equal(t, StyleBold, last.Style)
	assert.False(t, last.Enter, "the paragraph close must synthesize a bold leave")

	second := root.ChildrenOf(paras[1])
	require.NotEmpty(t, second)
	reopened := root.Node(second[0])
	assert.Equal(t, NStyleChange, reopened.Kind)
	assert.Equal(t, StyleBold, reopened.Style)
	assert.True(t, reopened.Enter, "the next paragraph must re-enter the transferred style")
}

func TestBulletThenEnumeratedListsStaySeparate(t *testing.T) {
	root := parseSilent(t, "- a\n- b\n\n-# one\n-# two")
	paras := parasOf(root, root.RootIdx)
	require.Len(t, paras, 1, "both lists belong to one wrapping paragraph")
	var lists []int
	for _, c := range root.ChildrenOf(paras[0]) {
		if root.Node(c).Kind == NAutoList {
			lists = append(lists, c)
		}
	}
	require.Len(t, lists, 2)
	assert.False(t, root.Node(lists[0]).Enumerated)
	assert.Len(t, root.ChildrenOf(lists[0]), 2)
	assert.True(t, root.Node(lists[1]).Enumerated)

	items := root.ChildrenOf(lists[1])
	require.Len(t, items, 2)
	assert.Equal(t, 1, root.Node(items[0]).Number)
	assert.Equal(t, 2, root.Node(items[1]).Number)
}

func TestParamValidationScenario(t *testing.T) {
	owner := &Member{Name: "f", Args: []string{"int x", "int y"}}
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()

	ParseDoc(cfg, graph, "f.cpp", 1, "", owner, "\\param x the x\n\\param z the z")

	require.Len(t, sink.Errors(), 2)
	assert.Contains(t, sink.Errors()[0].Message, "argument 'z' of command @param is not found in the argument list of f(int x, int y)")
	assert.Contains(t, sink.Errors()[1].Message, "parameter 'y'")
}

func TestCopydocSelfCycleViaParseDoc(t *testing.T) {
	graph := NewMemGraph()
	graph.Members["A"] = &Member{Name: "A", Detailed: "\\copydoc A"}
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink

	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\copydoc A")
	require.NotNil(t, root)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrCopyCycle, sink.Errors()[0].Kind)
	assert.Contains(t, sink.Errors()[0].Message, "Found recursive")
}

func TestCopydocMatchesDirectParse(t *testing.T) {
	graph := NewMemGraph()
	graph.Members["A"] = &Member{Name: "A", Detailed: "some text"}
	direct := parseSilent(t, "some text")

	cfg := NewConfiguration().Silent()
	copied := ParseDoc(cfg, graph, "test.cpp", 1, "", nil, "\\copydoc A")

	assert.Equal(t, collectWords(direct, direct.RootIdx), collectWords(copied, copied.RootIdx))
}

func TestCodeBlockCapturesLanguageSuffix(t *testing.T) {
	root := parseSilent(t, "\\code{.py}\nprint(1)\n\\endcode\nafter")
	idx := firstOfKind(root, root.RootIdx, NVerbatim)
	require.GreaterOrEqual(t, idx, 0)
	n := root.Node(idx)
	assert.Equal(t, VerbCode, n.VerbTy)
	assert.Equal(t, ".py", n.Lang)
	assert.Equal(t, "\nprint(1)\n", n.Body)
}

func TestUnterminatedCodeStillYieldsBody(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()

	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\code int x = 1;\n")
	idx := firstOfKind(root, root.RootIdx, NVerbatim)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, " int x = 1;\n", root.Node(idx).Body)

	require.NotEmpty(t, sink.Errors())
	assert.Equal(t, ErrLexicalUnterminated, sink.Errors()[0].Kind)
	assert.Equal(t, "code section ended without end marker", sink.Errors()[0].Message)
}

func TestAutoLinkResolvesKnownSymbols(t *testing.T) {
	graph := NewMemGraph()
	graph.Compounds["Widget"] = &Compound{Name: "Widget", File: "widget_8h"}
	graph.Members["Widget::render"] = &Member{Name: "render", Owner: "Widget", Brief: "Draws the widget."}

	root := ParseDoc(NewConfiguration().Silent(), graph, "f.cpp", 1, "", nil,
		"a Widget is drawn by Widget::render each frame")

	var linked []string
	for i := range root.Arena.Nodes {
		if root.Arena.Nodes[i].Kind == NLinkedWord {
			linked = append(linked, root.Arena.Nodes[i].Text)
		}
	}
	require.Equal(t, []string{"Widget", "Widget::render"}, linked)

	idx := firstOfKind(root, root.RootIdx, NLinkedWord)
	assert.Equal(t, "widget_8h", root.Node(idx).RefFile)
}

func TestAutoLinkDisabledLeavesPlainWords(t *testing.T) {
	graph := NewMemGraph()
	graph.Compounds["Widget"] = &Compound{Name: "Widget", File: "widget_8h"}
	cfg := NewConfiguration().Silent()
	cfg.AutoLinkSupport = false

	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "a Widget is drawn")
	assert.Equal(t, -1, firstOfKind(root, root.RootIdx, NLinkedWord))
	assert.Contains(t, collectWords(root, root.RootIdx), "Widget")
}

func TestParseDocIsDeterministic(t *testing.T) {
	input := "Intro <b>bold\n\n- a\n- b\n\n\\param x missing owner\n<table><tr><td>1</td></tr></table>"
	a := parseSilent(t, input)
	b := parseSilent(t, input)
	require.Equal(t, len(a.Arena.Nodes), len(b.Arena.Nodes))
	for i := range a.Arena.Nodes {
		assert.Equal(t, a.Arena.Nodes[i].Kind, b.Arena.Nodes[i].Kind)
		assert.Equal(t, a.Arena.Nodes[i].Children, b.Arena.Nodes[i].Children)
	}
}
