package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterLeaveStyleMatched(t *testing.T) {
	a := newArena()
	root := a.New(NRoot, -1)
	ctx := newParserContext()
	sink := NewRecordingSink(SilentSink())

	enterIdx := EnterStyle(a, ctx, root, StyleBold, nil)
	require.Len(t, ctx.StyleStack, 1)

	leaveIdx, ok := LeaveStyle(a, ctx, root, StyleBold, "f.cpp", 1, sink)
	assert.True(t, ok)
	assert.Empty(t, ctx.StyleStack)
	assert.True(t, a.Nodes[enterIdx].Enter)
	assert.False(t, a.Nodes[leaveIdx].Enter)
	assert.Empty(t, sink.Errors())
}

func TestLeaveStyleMismatchedKindReported(t *testing.T) {
	a := newArena()
	root := a.New(NRoot, -1)
	ctx := newParserContext()
	sink := NewRecordingSink(SilentSink())

	EnterStyle(a, ctx, root, StyleBold, nil)
	_, ok := LeaveStyle(a, ctx, root, StyleItalic, "f.cpp", 3, sink)
	assert.False(t, ok)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrMismatchedStyle, sink.Errors()[0].Kind)
}

func TestLeaveStyleWithEmptyStackReported(t *testing.T) {
	a := newArena()
	root := a.New(NRoot, -1)
	ctx := newParserContext()
	sink := NewRecordingSink(SilentSink())

	_, ok := LeaveStyle(a, ctx, root, StyleBold, "f.cpp", 5, sink)
	assert.False(t, ok)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrMismatchedStyle, sink.Errors()[0].Kind)
}

func TestClosePraTransfersOpenStylesAcrossParagraphBoundary(t *testing.T) {
	a := newArena()
	root := a.New(NRoot, -1)
	ctx := newParserContext()

	para1 := a.New(NPara, root)
	EnterStyle(a, ctx, para1, StyleBold, nil)
	ClosePara(a, ctx, para1)
	assert.Empty(t, ctx.StyleStack)
	assert.Len(t, ctx.InitStyleStack, 1)

	para2 := a.New(NPara, root)
	ReopenPara(a, ctx, para2)
	assert.Empty(t, ctx.InitStyleStack)
	require.Len(t, ctx.StyleStack, 1)
	assert.Equal(t, StyleBold, ctx.StyleStack[0].Style)
}

func TestUnmatchedStyleOpenAtEOF(t *testing.T) {
	ctx := newParserContext()
	a := newArena()
	root := a.New(NRoot, -1)
	EnterStyle(a, ctx, root, StyleCode, nil)
	sink := NewRecordingSink(SilentSink())
	UnmatchedStyleOpen(ctx, "f.cpp", sink)
	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, ErrUnmatchedStyleOpen, sink.Errors()[0].Kind)
}
