package docparser

// xmlDocBlockTags is the block-level half of the XML-documentation tag
// subset: each opens a construct of its own rather than inline markup.
// The inline half (see, paramref, typeparamref) is handled by
// handleXmlDocInline; c is handled as a style tag and lives in htmlTagToStyle.
var xmlDocBlockTags = map[string]bool{
	"summary": true, "remarks": true, "value": true, "example": true,
	"para": true, "param": true, "typeparam": true, "exception": true,
	"returns": true, "list": true, "permission": true, "include": true,
	"inheritdoc": true, "seealso": true,
}

var xmlDocInlineTags = map[string]bool{
	"see": true, "paramref": true, "typeparamref": true,
}

// parseXmlDocBlock dispatches one block-level XML-doc tag. The
// content of the container tags (summary, remarks, ...) parses as ordinary
// block content directly into parent, so back-end visitors see the same
// Para/SimpleSect/ParamSect shapes whether the source used \param or
// <param name="...">.
func (p *Parser) parseXmlDocBlock(parent int, t Token) {
	p.ctx().XMLComment = true
	switch t.Name {
	case "summary", "remarks", "value", "example":
		p.consume()
		if !t.Empty {
			p.parseUntilCloseTag(parent, t.Name)
		}
	case "para":
		p.consume() // paragraph break; the block loop starts a fresh Para
	case "param", "typeparam":
		p.consume()
		p.parseXmlParam(parent, t)
	case "exception":
		p.consume()
		p.parseXmlException(parent, t)
	case "returns":
		p.consume()
		p.ctx().HasReturnCommand = true
		idx := p.arena.New(NSimpleSect, parent)
		p.arena.Nodes[idx].SSKind = SSReturn
		p.arena.Nodes[idx].SSTitle = -1
		if !t.Empty {
			p.pushNodeStack(idx)
			p.parseUntilCloseTag(idx, "returns")
			p.popNodeStack()
		}
	case "seealso":
		p.consume()
		idx := p.arena.New(NSimpleSect, parent)
		p.arena.Nodes[idx].SSKind = SSSee
		p.arena.Nodes[idx].SSTitle = -1
		if cref := attrValue(t.Attribs, "cref"); cref != "" {
			paraIdx := p.arena.New(NPara, idx)
			p.ctx().InSeeBlock = true
			p.buildRefTarget(paraIdx, cref, t.Line, false)
			p.ctx().InSeeBlock = false
		}
		if !t.Empty {
			p.pushNodeStack(idx)
			p.parseUntilCloseTag(idx, "seealso")
			p.popNodeStack()
		}
	case "list":
		p.consume()
		p.parseXmlList(parent, t)
	case "permission":
		p.consume()
		idx := p.arena.New(NSimpleSect, parent)
		titleIdx := p.arena.New(NTitle, idx)
		p.arena.Nodes[titleIdx].Title = "Permission"
		p.arena.Nodes[idx].SSKind = SSUser
		p.arena.Nodes[idx].HasTitle = true
		p.arena.Nodes[idx].SSTitle = titleIdx
		if !t.Empty {
			p.pushNodeStack(idx)
			p.parseUntilCloseTag(idx, "permission")
			p.popNodeStack()
		}
	case "include":
		p.consume()
		p.parseXmlInclude(parent, t)
	case "inheritdoc":
		p.consume()
		p.applyInheritDoc(parent, t)
	default:
		p.consume()
	}
}

// parseUntilCloseTag parses block content into parent until the matching
// end tag, which it consumes. A missing end tag runs to end of input and
// the caller's own loop recovers.
func (p *Parser) parseUntilCloseTag(parent int, name string) {
	p.parseBlocks(parent, func(pt Token) bool {
		return pt.Kind == TokHtmlTag && pt.EndTag && pt.Name == name
	})
	if pt := p.peek(); pt.Kind == TokHtmlTag && pt.EndTag && pt.Name == name {
		p.consume()
	}
}

// parseXmlParam implements <param name="x">...</param> and
// <typeparam name="T">...</typeparam>, feeding the same params_found
// bookkeeping the \param command does so the validation pass treats
// both spellings identically.
func (p *Parser) parseXmlParam(parent int, t Token) {
	kind := PSParam
	if t.Name == "typeparam" {
		kind = PSTemplateParam
	}
	name := attrValue(t.Attribs, "name")
	if name == "" {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "missing name attribute on <%s>", t.Name)
	} else {
		p.ctx().ParamsFound[name] = true
		if kind == PSParam {
			p.ctx().HasParamCommand = true
		}
	}

	idx := p.arena.New(NParamSect, parent)
	p.arena.Nodes[idx].PSKind = kind
	if name != "" {
		p.arena.Nodes[idx].Names = []string{name}
	}
	listIdx := p.arena.New(NParamList, idx)
	if !t.Empty {
		p.pushNodeStack(listIdx)
		p.parseUntilCloseTag(listIdx, t.Name)
		p.popNodeStack()
	}
}

func (p *Parser) parseXmlException(parent int, t Token) {
	cref := attrValue(t.Attribs, "cref")
	idx := p.arena.New(NParamSect, parent)
	p.arena.Nodes[idx].PSKind = PSException
	if cref != "" {
		p.arena.Nodes[idx].Names = []string{cref}
	}
	listIdx := p.arena.New(NParamList, idx)
	if !t.Empty {
		p.pushNodeStack(listIdx)
		p.parseUntilCloseTag(listIdx, "exception")
		p.popNodeStack()
	}
}

// parseXmlList implements <list type="bullet|number|table"> with <item>,
// <listheader>, <term> and <description> children, mapped onto the same
// HtmlList/HtmlListItem shapes the <ul>/<ol> grammar produces.
func (p *Parser) parseXmlList(parent int, open Token) {
	idx := p.arena.New(NHtmlList, parent)
	if attrValue(open.Attribs, "type") == "number" {
		p.arena.Nodes[idx].ListKind = HtmlOrdered
	}
	p.arena.Nodes[idx].Attrs = open.Attribs

	p.pushNodeStack(idx)
	defer p.popNodeStack()

	number := 0
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			return
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == "list" {
			p.consume()
			return
		}
		if t.Kind == TokHtmlTag && !t.EndTag && (t.Name == "item" || t.Name == "listheader") {
			p.consume()
			number++
			itemIdx := p.arena.New(NHtmlListItem, idx)
			p.arena.Nodes[itemIdx].Number = number
			p.arena.Nodes[itemIdx].Header = t.Name == "listheader"
			p.pushNodeStack(itemIdx)
			p.parseXmlListItem(itemIdx)
			p.popNodeStack()
			if pt := p.peek(); pt.Kind == TokHtmlTag && pt.EndTag && (pt.Name == "item" || pt.Name == "listheader") {
				p.consume()
			}
			continue
		}
		p.consume()
	}
}

func (p *Parser) parseXmlListItem(itemIdx int) {
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			return
		}
		if t.Kind == TokHtmlTag {
			switch {
			case t.Name == "term" && !t.EndTag:
				p.consume()
				termIdx := p.arena.New(NHtmlDescTitle, itemIdx)
				p.pushNodeStack(termIdx)
				p.parseUntilCloseTag(termIdx, "term")
				p.popNodeStack()
				continue
			case t.Name == "description" && !t.EndTag:
				p.consume()
				descIdx := p.arena.New(NHtmlDescData, itemIdx)
				p.pushNodeStack(descIdx)
				p.parseUntilCloseTag(descIdx, "description")
				p.popNodeStack()
				continue
			case (t.Name == "term" || t.Name == "description") && t.EndTag:
				p.consume() // stray close, already handled above
				continue
			case t.Name == "item" || t.Name == "listheader" || t.Name == "list":
				return
			}
		}
		if t.Kind == TokNewPara || t.Kind == TokWhiteSpace {
			p.consume()
			continue
		}
		p.parseParagraph(itemIdx)
	}
}

// parseXmlInclude implements <include file="..."/>: the named file's
// content is spliced in as an Include node, read through the same
// Configuration.ReadFile hook \include uses.
func (p *Parser) parseXmlInclude(parent int, t Token) {
	file := attrValue(t.Attribs, "file")
	if file == "" {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "missing file attribute on <include>")
		return
	}
	lines, err := p.readIncludeFile(file, t)
	if err != nil {
		return
	}
	idx := p.arena.New(NInclude, parent)
	n := p.arena.Nodes[idx]
	n.IncType = "include"
	n.File = file
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

// handleXmlDocInline handles the inline XML-doc tags encountered mid
// paragraph: <see cref="..."/> becomes a resolved Ref, <paramref
// name="..."/> and <typeparamref name="..."/> become the named parameter
// in code style.
func (p *Parser) handleXmlDocInline(parent int, t Token) {
	p.ctx().XMLComment = true
	switch t.Name {
	case "see":
		cref := attrValue(t.Attribs, "cref")
		if cref == "" {
			p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "missing cref attribute on <see>")
			if !t.Empty {
				p.discardUntilCloseTag("see")
			}
			return
		}
		p.ctx().InSeeBlock = true
		idx := p.buildRefTarget(parent, cref, t.Line, false)
		p.ctx().InSeeBlock = false
		if !t.Empty {
			p.consumeInlineInto(idx, "see")
		}
	case "paramref", "typeparamref":
		name := attrValue(t.Attribs, "name")
		if name == "" {
			p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "missing name attribute on <%s>", t.Name)
			return
		}
		EnterStyle(p.arena, p.ctx(), parent, StyleCode, nil)
		idx := p.arena.New(NWord, parent)
		p.arena.Nodes[idx].Text = name
		LeaveStyle(p.arena, p.ctx(), parent, StyleCode, p.file, t.Line, p.sink)
		if !t.Empty {
			p.discardUntilCloseTag(t.Name)
		}
	}
}

// consumeInlineInto collects words and whitespace into idx until the named
// end tag, the same way \link collects its description.
func (p *Parser) consumeInlineInto(idx int, name string) {
	for {
		t := p.peek()
		if t.Kind == TokEnd || t.Kind == TokNewPara {
			return
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == name {
			p.consume()
			return
		}
		switch t.Kind {
		case TokWord, TokLinkableWord:
			p.consume()
			wi := p.arena.New(NWord, idx)
			p.arena.Nodes[wi].Text = t.Name
		case TokWhiteSpace:
			p.consume()
			wi := p.arena.New(NWhiteSpace, idx)
			p.arena.Nodes[wi].Chars = t.Chars
		default:
			p.consume()
		}
	}
}

func (p *Parser) discardUntilCloseTag(name string) {
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			return
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == name {
			p.consume()
			return
		}
		p.consume()
	}
}
