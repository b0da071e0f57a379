package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHtmlTableResolvesColumnCount(t *testing.T) {
	input := "<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>"
	root := parseSilent(t, input)
	tblIdx := firstOfKind(root, root.RootIdx, NHtmlTable)
	require.GreaterOrEqual(t, tblIdx, 0)
	assert.Equal(t, 2, root.Node(tblIdx).NumColumns)

	rows := root.ChildrenOf(tblIdx)
	require.Len(t, rows, 2)
	headerRow := root.ChildrenOf(rows[0])
	require.Len(t, headerRow, 2)
	assert.True(t, root.Node(headerRow[0]).Header)
}

func TestHtmlTableMismatchedRowReportsMalformed(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()
	input := "<table><tr><td>1</td><td>2</td></tr><tr><td>only-one</td></tr></table>"
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, input)
	require.NotNil(t, root)

	found := false
	for _, e := range sink.Errors() {
		if e.Kind == ErrTableMalformed {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHtmlTableStrayContentReportsMalformed(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()
	input := "<table>stray<tr><td>1</td></tr></table>"
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, input)
	require.NotNil(t, root)

	found := false
	for _, e := range sink.Errors() {
		if e.Kind == ErrTableMalformed {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHtmlTableRowspanCarriesIntoLaterRows(t *testing.T) {
	cfg := NewConfiguration()
	sink := NewRecordingSink(SilentSink())
	cfg.Sink = sink
	graph := NewMemGraph()
	input := `<table><tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td></tr></table>`
	root := ParseDoc(cfg, graph, "f.cpp", 1, "", nil, input)

	tblIdx := firstOfKind(root, root.RootIdx, NHtmlTable)
	require.GreaterOrEqual(t, tblIdx, 0)
	assert.Equal(t, 2, root.Node(tblIdx).NumColumns)
	assert.Empty(t, sink.Errors(), "the second row's single cell plus the carried rowspan fills the grid")
}

func TestHtmlTableCaptionParsed(t *testing.T) {
	input := "<table><caption>My Table</caption><tr><td>1</td></tr></table>"
	root := parseSilent(t, input)
	tblIdx := firstOfKind(root, root.RootIdx, NHtmlTable)
	require.GreaterOrEqual(t, tblIdx, 0)
	capIdx := firstOfKindIn(root, tblIdx, NHtmlCaption)
	assert.GreaterOrEqual(t, capIdx, 0)
}
