package docparser

import (
	"fmt"
	"strings"
)

// buildVerbatimBlock implements the verbatim-family commands:
// \verbatim, \code, \dot, \msc, \startuml, and the *only blocks. Each
// switches the Scanner into the matching lexical state so the body is
// returned as one TokVerbatimBody token up to its terminator.
func (p *Parser) buildVerbatimBlock(parent int, id commandID, t Token) {
	state, ok := verbatimOnlyState[id]
	if !ok {
		return
	}
	p.src.PushState(state)
	body := p.src.Next()
	p.src.PopState()

	idx := p.arena.New(NVerbatim, parent)
	n := p.arena.Nodes[idx]
	n.VerbTy = verbatimOnlyType[id]
	n.Body = body.Verb
	n.Preformatted = true
	if id == cmdCodeBlock {
		n.Lang = body.Name
	}
	p.arena.Nodes[idx] = n

	if !body.EndTag {
		// body ran to end of input without its terminator.
		p.sink.WarnDocError(p.file, t.Line, ErrLexicalUnterminated,
			"%s section ended without end marker", verbatimSectionName[id])
	}
}

// buildImageCommand implements \image: target format, file
// name, an optional caption, and optional width/height sizing attrs.
func (p *Parser) buildImageCommand(parent int, t Token) {
	fmtName, ok := p.expectWord("image")
	if !ok {
		return
	}
	name, ok := p.expectWord("image")
	if !ok {
		return
	}
	idx := p.arena.New(NImage, parent)
	n := p.arena.Nodes[idx]
	n.MediaTy = fmtName
	n.Name = name
	p.consumeOptionalCaptionAndSize(idx, &n)
	p.arena.Nodes[idx] = n
}

// buildMediaFileCommand implements \dotfile, \mscfile, \diafile: a file
// name followed by an optional caption/size, same trailing grammar as
// \image but without the leading output-format word.
func (p *Parser) buildMediaFileCommand(parent int, id commandID, t Token) {
	name, ok := p.expectWord(t.Name)
	if !ok {
		return
	}
	kind := NDotFile
	switch id {
	case cmdMscfile:
		kind = NMscFile
	case cmdDiafile:
		kind = NDiaFile
	}
	idx := p.arena.New(kind, parent)
	n := p.arena.Nodes[idx]
	n.Name = name
	p.consumeOptionalCaptionAndSize(idx, &n)
	p.arena.Nodes[idx] = n
}

// consumeOptionalCaptionAndSize absorbs the words that trail
// \image/\dotfile/\mscfile/\diafile on the same line: "width=..."/
// "height=..." words set the size, any other word joins the caption.
func (p *Parser) consumeOptionalCaptionAndSize(idx int, n *Node) {
	for {
		pt := p.peek()
		if pt.Kind == TokWhiteSpace && !strings.Contains(pt.Chars, "\n") {
			p.consume()
			continue
		}
		if !pt.IsWord() {
			return
		}
		switch {
		case len(pt.Name) > 6 && pt.Name[:6] == "width=":
			p.consume()
			n.Size = pt.Name
		case len(pt.Name) > 7 && pt.Name[:7] == "height=":
			p.consume()
			n.Size = pt.Name
		default:
			p.consume()
			if n.MediaTitle == "" {
				n.MediaTitle = pt.Name
			} else {
				n.MediaTitle += " " + pt.Name
			}
		}
	}
}

// buildFormula implements \f$ ... \f$ / \f[ ... \f] / \f{env}{ ... \f}:
// the Scanner hands back the whole delimited body as one TokVerbatimBody
// once switched into the formula lex state.
func (p *Parser) buildFormula(parent int, t Token) {
	p.src.PushState(StateFormula)
	body := p.src.Next()
	p.src.PopState()
	text := body.Verb
	key := strings.TrimSpace(text)
	if f := p.graph.FindFormula(key); f != nil {
		// a previously rendered formula with identical content: reuse its
		// canonical text instead of re-deriving it from this occurrence.
		text = f.Text
	}
	idx := p.arena.New(NFormula, parent)
	n := p.arena.Nodes[idx]
	n.FormulaID = key
	n.FormulaText = text
	p.arena.Nodes[idx] = n
	if !body.EndTag {
		p.sink.WarnDocError(p.file, t.Line, ErrLexicalUnterminated, "unterminated formula")
	}
}

// buildInclude implements \include and its siblings: the file
// name argument is resolved via Configuration.ReadFile, and for
// \dontinclude/\snippet the resulting lines become the include-file
// cursor consumed by subsequent \line/\skip/\skipline/\until commands
// on this ParserContext.
func (p *Parser) buildInclude(parent int, id commandID, t Token) {
	name, ok := p.expectWord(t.Name)
	if !ok {
		return
	}
	blockID := ""
	if id == cmdSnippet {
		if bid, ok := p.expectWord("snippet"); ok {
			blockID = bid
		}
	}
	lines, err := p.readIncludeFile(name, t)
	if err != nil {
		return
	}
	switch id {
	case cmdDontinclude:
		p.ctx().IncludeFile = name
		p.ctx().IncludeBuffer = lines
		p.ctx().IncludeOffset = 0
		return
	case cmdSnippet:
		p.ctx().IncludeFile = name
		p.ctx().IncludeBuffer = lines
		p.ctx().IncludeOffset = 0
		idx := p.arena.New(NInclude, parent)
		n := p.arena.Nodes[idx]
		n.IncType = "snippet"
		n.File = name
		n.BlockID = blockID
		n.Preformatted = true
		p.arena.Nodes[idx] = n
		return
	}
	idx := p.arena.New(NInclude, parent)
	n := p.arena.Nodes[idx]
	n.File = name
	switch id {
	case cmdInclude:
		n.IncType = "include"
	case cmdIncludelineno:
		n.IncType = "includelineno"
	case cmdHtmlinclude:
		n.IncType = "htmlinclude"
	case cmdLatexinclude:
		n.IncType = "latexinclude"
	case cmdVerbinclude:
		n.IncType = "verbinclude"
		n.Preformatted = true
	}
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}
	n.IncText = text
	p.arena.Nodes[idx] = n
}

func (p *Parser) readIncludeFile(name string, t Token) ([]string, error) {
	if p.cfg == nil || p.cfg.ReadFile == nil {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "cannot read include file `%s`: no file reader configured", name)
		return nil, fmt.Errorf("no reader")
	}
	lines, err := p.cfg.ReadFile(name)
	if err != nil {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "cannot read include file `%s`: %s", name, err)
		return nil, err
	}
	return lines, nil
}

// buildIncOperator implements \line, \skip, \skipline, \until:
// each advances the per-context include-file cursor left behind by
// \dontinclude/\snippet and emits what it passed over as a Verbatim-like
// IncOperator node.
func (p *Parser) buildIncOperator(parent int, id commandID, t Token) {
	pattern, _ := p.expectWord(t.Name)
	c := p.ctx()
	if c.IncludeBuffer == nil {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "`\\%s` used without a preceding \\dontinclude or \\snippet", t.Name)
		return
	}
	idx := p.arena.New(NIncOperator, parent)
	n := p.arena.Nodes[idx]
	n.Pattern = pattern
	n.First = c.IncludeOffset == 0

	switch id {
	case cmdLine:
		// Line advances to the first non-empty line matching the pattern;
		// empty lines are skipped over, not returned.
		n.OpKind = IncLine
		for c.IncludeOffset < len(c.IncludeBuffer) {
			line := c.IncludeBuffer[c.IncludeOffset]
			c.IncludeOffset++
			if strings.TrimSpace(line) == "" {
				continue
			}
			if containsPattern(line, pattern) {
				n.OpText = line
				break
			}
		}
	case cmdSkipline:
		n.OpKind = IncSkipLine
		for c.IncludeOffset < len(c.IncludeBuffer) {
			line := c.IncludeBuffer[c.IncludeOffset]
			c.IncludeOffset++
			if containsPattern(line, pattern) {
				n.OpText = line
				break
			}
		}
	case cmdSkip:
		n.OpKind = IncSkip
		for c.IncludeOffset < len(c.IncludeBuffer) {
			if containsPattern(c.IncludeBuffer[c.IncludeOffset], pattern) {
				break
			}
			c.IncludeOffset++
		}
	case cmdUntil:
		n.OpKind = IncUntil
		var buf string
		for c.IncludeOffset < len(c.IncludeBuffer) {
			line := c.IncludeBuffer[c.IncludeOffset]
			c.IncludeOffset++
			if buf != "" {
				buf += "\n"
			}
			buf += line
			if containsPattern(line, pattern) {
				break
			}
		}
		n.OpText = buf
	}
	n.Last = c.IncludeOffset >= len(c.IncludeBuffer)
	p.arena.Nodes[idx] = n
}

func containsPattern(line, pattern string) bool {
	if pattern == "" {
		return true
	}
	for i := 0; i+len(pattern) <= len(line); i++ {
		if line[i:i+len(pattern)] == pattern {
			return true
		}
	}
	return false
}

// XRefItem is one \xrefitem entry registered against a named list id,
// not tied to the four built-in todo/test/bug/deprecated lists.
type XRefItem struct {
	Key     string
	Title   string
	NodeIdx int
}

// buildXrefItem implements \xrefitem: a
// user-defined cross-reference list identified by its key (e.g. "todo",
// or a caller-defined id), with a title word and the body text captured
// as the item's detail. Each item is also registered into the dispatcher's
// xrefLists so a caller can enumerate a whole list (e.g. to render a
// project-wide todo page) without re-walking every Root.
func (p *Parser) buildXrefItem(parent int, t Token) {
	key, ok := p.expectWord("xrefitem")
	if !ok {
		return
	}
	title, ok := p.expectWord("xrefitem")
	if !ok {
		return
	}
	_, ok = p.expectWord("xrefitem")
	if !ok {
		return
	}
	idx := p.arena.New(NXRefItem, parent)
	n := p.arena.Nodes[idx]
	n.Key = key
	n.ListID = key
	n.Title = title
	p.arena.Nodes[idx] = n
	if p.xrefLists == nil {
		p.xrefLists = map[string][]XRefItem{}
	}
	p.xrefLists[key] = append(p.xrefLists[key], XRefItem{Key: key, Title: title, NodeIdx: idx})
	p.parseBlocks(idx, func(pt Token) bool {
		return pt.Kind == TokCommand && isParaStopper(lookupCommand(pt.Name)) && lookupCommand(pt.Name) != cmdXrefitem
	})
}
