package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSilent(t *testing.T, input string) *Root {
	t.Helper()
	cfg := NewConfiguration().Silent()
	graph := NewMemGraph()
	return ParseDoc(cfg, graph, "test.cpp", 1, "", nil, input)
}

func TestParseDocSimpleParagraph(t *testing.T) {
	root := parseSilent(t, "This is a simple sentence.")
	require.NotNil(t, root)
	words := collectWords(root, root.RootIdx)
	assert.Equal(t, []string{"This", "is", "a", "simple", "sentence."}, words)
}

func TestParseDocEveryNodeHasOneParent(t *testing.T) {
	root := parseSilent(t, "A @b bold word and a \\ref target and a <b>tag</b>.")
	for i := range root.Arena.Nodes {
		if i == root.RootIdx {
			assert.Equal(t, -1, root.ParentOf(i))
			continue
		}
		parent := root.ParentOf(i)
		require.GreaterOrEqual(t, parent, 0)
		found := false
		for _, c := range root.ChildrenOf(parent) {
			if c == i {
				found = true
			}
		}
		assert.True(t, found, "node %d must appear in its parent %d's children", i, parent)
	}
}

func TestParseDocSectionNesting(t *testing.T) {
	root := parseSilent(t, "\\section top Top Section\nIntro text.\n\\subsection sub Sub Section\nNested text.")
	secIdx := firstOfKind(root, root.RootIdx, NSection)
	require.GreaterOrEqual(t, secIdx, 0)
	sec := root.Node(secIdx)
	assert.Equal(t, "top", sec.ID)
	assert.Equal(t, 1, sec.Level)

	subIdx := firstOfKindIn(root, secIdx, NSection)
	require.GreaterOrEqual(t, subIdx, 0)
	sub := root.Node(subIdx)
	assert.Equal(t, "sub", sub.ID)
	assert.Equal(t, 2, sub.Level)
}

func TestOutOfLevelSectionClampedAndReported(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()

	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, "\\subsubsection deep Deep Title\ntext")
	secIdx := firstOfKind(root, root.RootIdx, NSection)
	require.GreaterOrEqual(t, secIdx, 0)
	assert.Equal(t, 1, root.Node(secIdx).Level)

	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrUnexpectedToken, sink.Errors()[0].Kind)
}

func TestFindSectionsWithoutFullParse(t *testing.T) {
	secs := FindSections("\\section intro Introduction\nbody\n\\section two Part Two\n", "f.cpp")
	require.Len(t, secs, 2)
	assert.Equal(t, "intro", secs[0].ID)
	assert.Equal(t, "Introduction", secs[0].Title)
	assert.Equal(t, "two", secs[1].ID)
}

func collectWords(r *Root, idx int) []string {
	var out []string
	var walk func(int)
	walk = func(i int) {
		n := r.Node(i)
		if n.Kind == NWord {
			out = append(out, n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(idx)
	return out
}

func firstOfKind(r *Root, idx int, kind NodeKind) int {
	n := r.Node(idx)
	if n.Kind == kind {
		return idx
	}
	for _, c := range n.Children {
		if found := firstOfKind(r, c, kind); found >= 0 {
			return found
		}
	}
	return -1
}

func firstOfKindIn(r *Root, idx int, kind NodeKind) int {
	n := r.Node(idx)
	for _, c := range n.Children {
		if r.Node(c).Kind == kind {
			return c
		}
		if found := firstOfKindIn(r, c, kind); found >= 0 {
			return found
		}
	}
	return -1
}
