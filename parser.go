package docparser

import "strconv"

// Parser drives the block grammar over a TokenSource: it owns the arena
// being built for the current Root, the context stack, a one-token
// lookahead buffer over the pull-based TokenSource, and the collaborators
// the block grammar and dispatcher consult (symbol graph, diagnostics
// sink).
type Parser struct {
	arena *Arena
	src   TokenSource
	graph SymbolGraph
	sink  DiagSink
	ctxs  *ContextStack
	file  string
	cfg   *Configuration

	// xrefLists is the \xrefitem list registry, keyed by the
	// caller-chosen list id rather than a fixed enum.
	xrefLists map[string][]XRefItem

	// listIndents is the stack of open auto-list indent columns: a list
	// item at or left of the top column belongs to an enclosing list, so
	// the current paragraph must end rather than open a new list.
	listIndents []int

	peeked    *Token
	havePeek  bool
}

func newParser(arena *Arena, src TokenSource, graph SymbolGraph, sink DiagSink, ctxs *ContextStack, file string, cfg *Configuration) *Parser {
	if cfg == nil {
		cfg = NewConfiguration()
	}
	return &Parser{arena: arena, src: src, graph: graph, sink: sink, ctxs: ctxs, file: file, cfg: cfg}
}

func (p *Parser) ctx() *ParserContext { return p.ctxs.Current() }

// peek returns the next token without consuming it.
func (p *Parser) peek() Token {
	if !p.havePeek {
		p.peeked = new(Token)
		*p.peeked = p.src.Next()
		p.havePeek = true
	}
	return *p.peeked
}

// consume returns and discards the next token (the peeked one, if any).
func (p *Parser) consume() Token {
	t := p.peek()
	p.havePeek = false
	return t
}

// pushNodeStack / popNodeStack track the currently-open structural nodes
// used by the style engine to validate nesting depth on close.
func (p *Parser) pushNodeStack(idx int) { p.ctx().NodeStack = append(p.ctx().NodeStack, idx) }
func (p *Parser) popNodeStack() {
	c := p.ctx()
	if len(c.NodeStack) > 0 {
		c.NodeStack = c.NodeStack[:len(c.NodeStack)-1]
	}
}

// isParaStopper reports whether a command id ends the paragraph currently
// being consumed, returning control to
// parseBlocks without consuming the token.
func isParaStopper(id commandID) bool {
	switch id {
	case cmdSection, cmdSubsection, cmdSubsubsection, cmdParagraphCmd,
		cmdSa, cmdReturn, cmdAuthor, cmdAuthors, cmdVersion, cmdSince, cmdDate,
		cmdNote, cmdWarning, cmdPre, cmdPost, cmdCopyright, cmdInvariant,
		cmdRemark, cmdAttention, cmdPar,
		cmdParam, cmdTParam, cmdRetval, cmdException,
		cmdInternal, cmdEndinternal, cmdParblock, cmdEndparblock,
		cmdXrefitem, cmdSecreflist, cmdSecrefitem, cmdEndsecreflist, cmdEndlink,
		cmdLi:
		return true
	default:
		return false
	}
}

var structuralHtmlTags = map[string]bool{
	"ul": true, "ol": true, "dl": true, "table": true, "blockquote": true,
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// blockBoundaryHtmlTags delimit an enclosing construct's entries (list
// items, table cells, description titles/data, captions). A paragraph never
// consumes one; the enclosing block grammar does.
var blockBoundaryHtmlTags = map[string]bool{
	"li": true, "dt": true, "dd": true, "tr": true, "td": true, "th": true,
	"caption": true, "item": true, "listheader": true, "term": true,
	"description": true,
}

// parseBlocks consumes block-level content into parent until stop(peek())
// is true or the input ends. This is the shared engine behind Root,
// Section, SimpleSect, ParamList, ParBlock, Internal, list items, and
// table/desc-list cells.
func (p *Parser) parseBlocks(parent int, stop func(Token) bool) {
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			return
		}
		if stop(t) {
			return
		}
		switch t.Kind {
		case TokNewPara:
			p.consume()
		case TokListItem:
			// An auto-list always lives inside a paragraph, so a fresh
			// Para wraps it and any sibling lists that follow.
			p.parseParagraph(parent)
		case TokEndList:
			p.consume() // stray end-of-list marker: nothing open here
		case TokRcsTag:
			p.parseRcsSection(parent)
		case TokHtmlTag:
			switch {
			case xmlDocBlockTags[t.Name] && !t.EndTag:
				p.parseXmlDocBlock(parent, t)
			case structuralHtmlTags[t.Name] && !t.EndTag:
				p.parseHtmlStructural(parent, t)
			case (t.Name == "p" || t.Name == "para") && t.EndTag:
				p.consume() // explicit paragraph close; the loop starts a fresh one
			case blockBoundaryHtmlTags[t.Name]:
				p.sink.WarnDocError(p.file, t.Line, ErrUnexpectedToken, "found `<%s>` outside of its containing element", t.Name)
				p.consume()
			case t.EndTag:
				p.sink.WarnDocError(p.file, t.Line, ErrUnexpectedToken, "found `</%s>` without matching `<%s>`", t.Name, t.Name)
				p.consume()
			default:
				p.parseParagraph(parent)
			}
		case TokCommand:
			id := lookupCommand(t.Name)
			if !p.dispatchBlockCommand(parent, id, t) {
				p.parseParagraph(parent)
			}
		default:
			p.parseParagraph(parent)
		}
	}
}

// dispatchBlockCommand handles the commands that open (or close) a
// block-level sibling rather than paragraph content. Returns false to tell
// parseBlocks to fall through to parseParagraph instead (inline commands
// and unknown commands).
func (p *Parser) dispatchBlockCommand(parent int, id commandID, t Token) bool {
	if lvl, ok := sectionLevelFor[id]; ok {
		p.parseSection(parent, lvl)
		return true
	}
	if kind, ok := simpleSectKindFor[id]; ok {
		p.parseSimpleSect(parent, kind)
		return true
	}
	switch id {
	case cmdParam, cmdTParam, cmdRetval, cmdException:
		p.parseParamSect(parent, paramKindFor(id))
		return true
	case cmdInternal:
		p.parseInternalBlock(parent)
		return true
	case cmdParblock:
		p.parseParBlock(parent)
		return true
	case cmdSecreflist:
		p.parseSecRefList(parent)
		return true
	case cmdLi:
		p.parseSimpleList(parent)
		return true
	case cmdXrefitem:
		p.consume()
		p.buildXrefItem(parent, t)
		return true
	case cmdEndinternal, cmdEndparblock, cmdEndsecreflist, cmdEndlink, cmdSecrefitem:
		p.sink.WarnDocError(p.file, t.Line, ErrUnexpectedToken, "found `\\%s` without a matching opening command", t.Name)
		p.consume()
		return true
	}
	return false
}

func paramKindFor(id commandID) ParamSectKind {
	switch id {
	case cmdParam:
		return PSParam
	case cmdRetval:
		return PSRetVal
	case cmdException:
		return PSException
	default:
		return PSTemplateParam
	}
}

// parseParagraph consumes inline content into one new Para child of parent
// until a block boundary. Leading whitespace is suppressed
// unless para already has a preserving child or is inside a preformatted
// ancestor.
func (p *Parser) parseParagraph(parent int) {
	paraIdx := p.arena.New(NPara, parent)
	p.arena.Nodes[paraIdx].Pos = Position{File: p.file, StartLine: p.src.CurrentLine()}
	ReopenPara(p.arena, p.ctx(), paraIdx)
	for {
		t := p.peek()
		p.arena.Nodes[paraIdx].Pos.EndLine = t.Line
		switch t.Kind {
		case TokEnd:
			ClosePara(p.arena, p.ctx(), paraIdx)
			return
		case TokNewPara:
			p.consume()
			ClosePara(p.arena, p.ctx(), paraIdx)
			return
		case TokListItem:
			if n := len(p.listIndents); n > 0 && t.Indent <= p.listIndents[n-1] {
				// The item belongs to an enclosing list; its item loop
				// takes over once this paragraph closes.
				ClosePara(p.arena, p.ctx(), paraIdx)
				return
			}
			p.parseAutoList(paraIdx, 0)
		case TokEndList, TokRcsTag:
			ClosePara(p.arena, p.ctx(), paraIdx)
			return
		case TokWhiteSpace:
			p.consume()
			if len(p.arena.Nodes[paraIdx].Children) == 0 && !p.arena.Nodes[paraIdx].Preformatted {
				continue
			}
			idx := p.arena.New(NWhiteSpace, paraIdx)
			p.arena.Nodes[idx].Chars = t.Chars
		case TokWord:
			p.consume()
			idx := p.arena.New(NWord, paraIdx)
			p.arena.Nodes[idx].Text = t.Name
		case TokLinkableWord:
			p.consume()
			p.buildAutoLinkedWord(paraIdx, t)
		case TokSymbol:
			p.consume()
			idx := p.arena.New(NSymbol, paraIdx)
			p.arena.Nodes[idx].SymbolKnd = t.Name
		case TokUrl:
			p.consume()
			idx := p.arena.New(NURL, paraIdx)
			n := p.arena.Nodes[idx]
			n.URL, n.IsEMail = t.Name, t.IsEMail
			p.arena.Nodes[idx] = n
		case TokHtmlTag:
			if !p.handleInlineHtmlTag(paraIdx, t) {
				ClosePara(p.arena, p.ctx(), paraIdx)
				return
			}
		case TokCommand:
			id := lookupCommand(t.Name)
			if isParaStopper(id) {
				ClosePara(p.arena, p.ctx(), paraIdx)
				return
			}
			p.dispatchInlineCommand(paraIdx, id, t)
		default:
			p.consume()
		}
	}
}

// handleInlineHtmlTag processes a recognized HTML tag encountered mid
// paragraph: style tags push/pop the style stack, br/hr become
// LineBreak/HorRuler, a/img become Link/Image, and any other structural
// tag (ul, table, ...) is left unconsumed so the caller closes the
// paragraph and lets parseBlocks handle it. Returns false in that case.
func (p *Parser) handleInlineHtmlTag(parent int, t Token) bool {
	if structuralHtmlTags[t.Name] || blockBoundaryHtmlTags[t.Name] || xmlDocBlockTags[t.Name] {
		return false
	}
	if style, ok := htmlTagToStyle[t.Name]; ok {
		p.consume()
		CheckEmptyElement(t.Name, t.Empty, p.file, t.Line, p.sink)
		if !t.EndTag {
			EnterStyle(p.arena, p.ctx(), parent, style, t.Attribs)
		} else {
			LeaveStyle(p.arena, p.ctx(), parent, style, p.file, t.Line, p.sink)
		}
		if style == StylePreformatted {
			p.src.SetInsidePre(!t.EndTag)
			p.arena.Nodes[parent].Preformatted = !t.EndTag
		}
		return true
	}
	if xmlDocInlineTags[t.Name] {
		p.consume()
		p.handleXmlDocInline(parent, t)
		return true
	}
	switch t.Name {
	case "br":
		p.consume()
		p.arena.New(NLineBreak, parent)
		return true
	case "hr":
		p.consume()
		p.arena.New(NHorRuler, parent)
		return true
	case "img":
		p.consume()
		p.buildImageFromTag(parent, t)
		return true
	case "a":
		p.consume()
		p.parseInlineAnchorTag(parent, t)
		return true
	default:
		p.consume()
		p.sink.WarnDocError(p.file, t.Line, ErrUnsupportedHtmlTag, "tag `<%s>` is not supported here; passing through as text", t.Name)
		idx := p.arena.New(NWord, parent)
		p.arena.Nodes[idx].Text = rawTagText(t)
		return true
	}
}

func rawTagText(t Token) string {
	s := "<"
	if t.EndTag {
		s += "/"
	}
	s += t.Name
	s += ">"
	return s
}

// buildImageFromTag builds an Image node from an inline <img> tag's
// attributes.
func (p *Parser) buildImageFromTag(parent int, t Token) {
	idx := p.arena.New(NImage, parent)
	n := p.arena.Nodes[idx]
	n.Attrs = t.Attribs
	for _, a := range t.Attribs {
		if a.Key == "src" {
			n.Name = a.Value
		}
		if a.Key == "alt" || a.Key == "title" {
			n.MediaTitle = a.Value
		}
	}
	p.arena.Nodes[idx] = n
}

// parseInlineAnchorTag builds a Link node from an <a href="..."> ... </a>
// or <a name="..."> tag, consuming inline content up to the matching
// </a>.
func (p *Parser) parseInlineAnchorTag(parent int, open Token) {
	idx := p.arena.New(NLink, parent)
	n := p.arena.Nodes[idx]
	for _, a := range open.Attribs {
		if a.Key == "href" {
			n.Target = a.Value
		}
		if a.Key == "name" {
			n.Target = a.Value
			p.arena.Nodes[idx] = n
			p.arena.Nodes[idx].Kind = NAnchor
			p.arena.Nodes[idx].ID = a.Value
			return
		}
	}
	p.arena.Nodes[idx] = n
	if open.Empty {
		return
	}
	c := p.ctx()
	c.InsideHTMLLink = true
	for {
		pt := p.peek()
		if pt.Kind == TokEnd {
			break
		}
		if pt.Kind == TokHtmlTag && pt.Name == "a" && pt.EndTag {
			p.consume()
			break
		}
		if pt.IsWord() {
			p.consume()
			wi := p.arena.New(NWord, idx)
			p.arena.Nodes[wi].Text = pt.Name
			continue
		}
		if pt.Kind == TokWhiteSpace {
			p.consume()
			wi := p.arena.New(NWhiteSpace, idx)
			p.arena.Nodes[wi].Chars = pt.Chars
			continue
		}
		break
	}
	c.InsideHTMLLink = false
}

func attrValue(attrs []Attrib, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func attrInt(attrs []Attrib, key string, def int) int {
	for _, a := range attrs {
		if a.Key == key {
			if v, err := strconv.Atoi(a.Value); err == nil {
				return v
			}
		}
	}
	return def
}
