package docparser

import "fmt"

// htmlTagToStyle maps the subset of recognizedHtmlTags that are inline
// style changes to their StyleKind. Structural tags (ul, table,
// ...) are handled by the block grammar, not here.
var htmlTagToStyle = map[string]StyleKind{
	"b":      StyleBold,
	"em":     StyleItalic,
	"i":      StyleItalic,
	"code":   StyleCode,
	"c":      StyleCode,
	"sub":    StyleSub,
	"sup":    StyleSup,
	"center": StyleCenter,
	"small":  StyleSmall,
	"pre":    StylePreformatted,
	"div":    StyleDiv,
	"span":   StyleSpan,
}

// xmlOnlyEmptyAllowed is the set of tags for which XHTML's `<x/>` syntax is
// permitted: every non-XML tag except img/br must use a matching
// close tag.
var xmlOnlyEmptyAllowed = map[string]bool{"img": true, "br": true}

// EnterStyle pushes StyleChange(enter) onto ctx.StyleStack and appends the
// enter node as a child of parent. position is recorded as the
// current node-stack depth so a later close can be checked against it.
func EnterStyle(arena *Arena, ctx *ParserContext, parent int, style StyleKind, attrs []Attrib) int {
	idx := arena.New(NStyleChange, parent)
	n := arena.Nodes[idx]
	n.Style = style
	n.Enter = true
	n.StackPos = len(ctx.NodeStack)
	n.Attrs = attrs
	arena.Nodes[idx] = n
	ctx.StyleStack = append(ctx.StyleStack, styleEntry{Style: style, NodeIdx: idx, StackPos: n.StackPos})
	return idx
}

// LeaveStyle handles a closing style tag. It requires the top of the
// style stack to match by style AND by position; a mismatch emits a
// diagnostic naming what was actually found and otherwise ignores the
// close.
func LeaveStyle(arena *Arena, ctx *ParserContext, parent int, style StyleKind, file string, line int, sink DiagSink) (int, bool) {
	if len(ctx.StyleStack) == 0 {
		sink.WarnDocError(file, line, ErrMismatchedStyle, "found `</%s>` without matching `<%s>`", styleTagName(style), styleTagName(style))
		return -1, false
	}
	top := ctx.StyleStack[len(ctx.StyleStack)-1]
	if top.Style != style {
		sink.WarnDocError(file, line, ErrMismatchedStyle, "found `</%s>` while expecting `</%s>`", styleTagName(style), styleTagName(top.Style))
		return -1, false
	}
	if top.StackPos != len(ctx.NodeStack) {
		sink.WarnDocError(file, line, ErrMismatchedStyle, "found `</%s>` at nesting level %d, expected at %d", styleTagName(style), len(ctx.NodeStack), top.StackPos)
		return -1, false
	}
	ctx.StyleStack = ctx.StyleStack[:len(ctx.StyleStack)-1]
	idx := arena.New(NStyleChange, parent)
	n := arena.Nodes[idx]
	n.Style = style
	n.Enter = false
	n.StackPos = top.StackPos
	arena.Nodes[idx] = n
	return idx, true
}

func styleTagName(s StyleKind) string {
	switch s {
	case StyleBold:
		return "b"
	case StyleItalic:
		return "em"
	case StyleCode:
		return "code"
	case StyleCenter:
		return "center"
	case StyleSmall:
		return "small"
	case StyleSub:
		return "sub"
	case StyleSup:
		return "sup"
	case StylePreformatted:
		return "pre"
	case StyleDiv:
		return "div"
	case StyleSpan:
		return "span"
	}
	return "?"
}

// ClosePara is run at the end of every Para: every style whose
// position is >= the current node-stack depth is synthesized as a leave
// node (appended to para) and transferred to the initial-style stack so
// the next paragraph can re-enter it. Styles opened at a shallower nesting
// level (still legitimately open across the paragraph boundary from an
// ancestor's perspective) are left alone.
func ClosePara(arena *Arena, ctx *ParserContext, paraIdx int) {
	depth := len(ctx.NodeStack)
	var kept []styleEntry
	var transferred []styleEntry
	for _, e := range ctx.StyleStack {
		if e.StackPos >= depth {
			leaveIdx := arena.New(NStyleChange, paraIdx)
			n := arena.Nodes[leaveIdx]
			n.Style = e.Style
			n.Enter = false
			n.StackPos = e.StackPos
			arena.Nodes[leaveIdx] = n
			transferred = append(transferred, e)
		} else {
			kept = append(kept, e)
		}
	}
	ctx.StyleStack = kept
	// Transferred styles are carried in the order they were opened;
	// ReopenPara re-emits them in that same order (outermost first), so the
	// live style stack is rebuilt in the order they'll be closed again.
	ctx.InitStyleStack = append(ctx.InitStyleStack, transferred...)
}

// ReopenPara is run at the start of the paragraph following a ClosePara
// that transferred styles: it re-emits enter nodes for the
// transferred styles, outermost (first opened) first, and pushes
// them back onto the live style stack.
func ReopenPara(arena *Arena, ctx *ParserContext, paraIdx int) {
	for _, e := range ctx.InitStyleStack {
		idx := arena.New(NStyleChange, paraIdx)
		n := arena.Nodes[idx]
		n.Style = e.Style
		n.Enter = true
		n.StackPos = e.StackPos
		arena.Nodes[idx] = n
		ctx.StyleStack = append(ctx.StyleStack, styleEntry{Style: e.Style, NodeIdx: idx, StackPos: e.StackPos})
	}
	ctx.InitStyleStack = nil
}

// CheckEmptyElement enforces that XHTML's `<x/>` syntax is forbidden for
// any non-XML tag except img/br.
func CheckEmptyElement(tag string, empty bool, file string, line int, sink DiagSink) {
	if empty && !xmlOnlyEmptyAllowed[tag] {
		sink.WarnDocError(file, line, ErrUnsupportedHtmlTag, "empty-element syntax `<%s/>` is not supported for `<%s>`", tag, tag)
	}
}

// UnmatchedStyleOpen is called at EOF: every
// entry remaining in the initial-style stack reports "end of block while
// expecting ...".
func UnmatchedStyleOpen(ctx *ParserContext, file string, sink DiagSink) {
	for _, e := range ctx.InitStyleStack {
		sink.WarnDocError(file, 0, ErrUnmatchedStyleOpen, "end of block while expecting %s", fmt.Sprintf("`</%s>`", styleTagName(e.Style)))
	}
	for _, e := range ctx.StyleStack {
		sink.WarnDocError(file, 0, ErrUnmatchedStyleOpen, "end of block while expecting %s", fmt.Sprintf("`</%s>`", styleTagName(e.Style)))
	}
}
