package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoListNesting(t *testing.T) {
	input := "- first item\n- second item\n  - nested item\n- third item\n"
	root := parseSilent(t, input)
	listIdx := firstOfKind(root, root.RootIdx, NAutoList)
	require.GreaterOrEqual(t, listIdx, 0)
	items := root.ChildrenOf(listIdx)
	require.Len(t, items, 3)

	nestedList := firstOfKindIn(root, items[1], NAutoList)
	assert.GreaterOrEqual(t, nestedList, 0)
}

func TestHtmlUnorderedListBuildsItems(t *testing.T) {
	root := parseSilent(t, "<ul><li>one</li><li>two</li></ul>")
	listIdx := firstOfKind(root, root.RootIdx, NHtmlList)
	require.GreaterOrEqual(t, listIdx, 0)
	assert.Equal(t, HtmlUnordered, root.Node(listIdx).ListKind)
	assert.Len(t, root.ChildrenOf(listIdx), 2)
}

func TestHtmlEmptyListSynthesizesOneItem(t *testing.T) {
	root := parseSilent(t, "<ul></ul>")
	listIdx := firstOfKind(root, root.RootIdx, NHtmlList)
	require.GreaterOrEqual(t, listIdx, 0)
	require.Len(t, root.ChildrenOf(listIdx), 1)
	assert.Equal(t, NHtmlListItem, root.Node(root.ChildrenOf(listIdx)[0]).Kind)
}

func TestVerbatimUnterminatedReportsError(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\verbatim\nno end marker here")
	require.NotNil(t, root)
	require.NotEmpty(t, sink.Errors())
	found := false
	for _, e := range sink.Errors() {
		if e.Kind == ErrLexicalUnterminated {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParamSectTracksMultipleNames(t *testing.T) {
	root := parseSilent(t, "\\param x,y the coordinates\n\\return the sum")
	idx := firstOfKind(root, root.RootIdx, NParamSect)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, []string{"x", "y"}, root.Node(idx).Names)

	retIdx := firstOfKind(root, root.RootIdx, NSimpleSect)
	require.GreaterOrEqual(t, retIdx, 0)
	assert.Equal(t, SSReturn, root.Node(retIdx).SSKind)
}

func TestParTitleRunsToEndOfLine(t *testing.T) {
	root := parseSilent(t, "\\par User Notes\nBody text here.")
	idx := firstOfKind(root, root.RootIdx, NSimpleSect)
	require.GreaterOrEqual(t, idx, 0)
	n := root.Node(idx)
	assert.Equal(t, SSPar, n.SSKind)
	require.True(t, n.HasTitle)
	assert.Equal(t, "User Notes", root.Node(n.SSTitle).Title)
	assert.Contains(t, collectWords(root, idx), "Body")
}

func TestIncludeOperatorsWalkTheBuffer(t *testing.T) {
	cfg := NewConfiguration().Silent()
	cfg.ReadFile = func(name string) ([]string, error) {
		return []string{"// setup", "", "int main() {", "  return 0;", "}"}, nil
	}
	graph := NewMemGraph()
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\dontinclude example.cpp\n\\skip main\n\\until }")

	var ops []int
	for i := range root.Arena.Nodes {
		if root.Arena.Nodes[i].Kind == NIncOperator {
			ops = append(ops, i)
		}
	}
	require.Len(t, ops, 2)

	skip := root.Node(ops[0])
	assert.Equal(t, IncSkip, skip.OpKind)
	assert.Empty(t, skip.OpText, "\\skip positions the cursor without emitting text")

	until := root.Node(ops[1])
	assert.Equal(t, IncUntil, until.OpKind)
	assert.Equal(t, "int main() {\n  return 0;\n}", until.OpText)
	assert.True(t, until.Last)
}

func TestParBlockAndInternalBlockParse(t *testing.T) {
	root := parseSilent(t, "\\internal\nhidden text\n\\endinternal\n\\parblock\nfirst\n\nsecond\n\\endparblock\n")
	assert.GreaterOrEqual(t, firstOfKind(root, root.RootIdx, NInternal), 0)
	assert.GreaterOrEqual(t, firstOfKind(root, root.RootIdx, NParBlock), 0)
}
