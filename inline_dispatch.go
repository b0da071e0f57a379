package docparser

// dispatchInlineCommand builds the AST node for a command encountered
// while consuming paragraph content: it acquires whatever argument
// the command needs by switching the token source's lexical state,
// builds the node, and on a missing/malformed argument emits a precise
// diagnostic and continues at the next safe point (here: just past the
// command token, since the paragraph loop itself provides
// synchronization).
func (p *Parser) dispatchInlineCommand(parent int, id commandID, t Token) {
	switch id {
	case cmdBold, cmdEmph, cmdCode:
		p.consume()
		p.styleNextWord(parent, id)
	case cmdAnchor:
		p.consume()
		p.buildAnchor(parent, t)
	case cmdRef, cmdSubpage:
		p.consume()
		p.buildRef(parent, t, id == cmdSubpage)
	case cmdInternalRef:
		p.consume()
		p.buildInternalRef(parent)
	case cmdCite:
		p.consume()
		p.buildCite(parent, t)
	case cmdLink, cmdJavalink:
		p.consume()
		p.buildLinkCommand(parent, t)
	case cmdHtmlOnly, cmdManOnly, cmdRtfOnly, cmdLatexOnly, cmdXmlOnly, cmdDocbookOnly,
		cmdVerbatim, cmdCodeBlock, cmdDot, cmdMsc, cmdStartUml:
		p.consume()
		p.buildVerbatimBlock(parent, id, t)
	case cmdImage:
		p.consume()
		p.buildImageCommand(parent, t)
	case cmdDotfile, cmdMscfile, cmdDiafile:
		p.consume()
		p.buildMediaFileCommand(parent, id, t)
	case cmdFormula:
		p.consume()
		p.buildFormula(parent, t)
	case cmdInclude, cmdIncludelineno, cmdDontinclude, cmdHtmlinclude,
		cmdLatexinclude, cmdVerbinclude, cmdSnippet:
		p.consume()
		p.buildInclude(parent, id, t)
	case cmdLine, cmdSkip, cmdSkipline, cmdUntil:
		p.consume()
		p.buildIncOperator(parent, id, t)
	case cmdXrefitem:
		p.consume()
		p.buildXrefItem(parent, t)
	case cmdAddindex:
		p.consume()
		p.buildIndexEntry(parent, t)
	case cmdSetscope:
		p.consume()
		p.applySetScope(t)
	case cmdInheritdoc:
		p.consume()
		p.applyInheritDoc(parent, t)
	case cmdUnknown:
		p.consume()
		p.sink.WarnDocError(p.file, t.Line, ErrUnknownCommand, "no matching command found for `\\%s`", t.Name)
		idx := p.arena.New(NWord, parent)
		p.arena.Nodes[idx].Text = "\\" + t.Name
	default:
		// Recognized but not meaningful as inline content here: skip it.
		// Paragraph-stopping commands never reach this switch (the caller
		// closes the paragraph on them first), so this default only guards
		// future command additions.
		p.consume()
	}
}

// styleNextWord implements the single-argument inline style commands
// \b/\e/\c: unlike the <b>/<code> tags, they apply only to the
// next word, so the enter/leave pair brackets exactly one Word node.
func (p *Parser) styleNextWord(parent int, id commandID) {
	style := StyleBold
	switch id {
	case cmdEmph:
		style = StyleItalic
	case cmdCode:
		style = StyleCode
	}
	t := p.skipWhitespace()
	if !t.IsWord() {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "expected a word after inline style command")
		return
	}
	p.consume()
	EnterStyle(p.arena, p.ctx(), parent, style, nil)
	idx := p.arena.New(NWord, parent)
	p.arena.Nodes[idx].Text = t.Name
	LeaveStyle(p.arena, p.ctx(), parent, style, p.file, t.Line, p.sink)
}

// skipWhitespace discards whitespace tokens so an argument-taking command
// sees its argument word, not the space separating it from the command.
func (p *Parser) skipWhitespace() Token {
	t := p.peek()
	for t.Kind == TokWhiteSpace {
		p.consume()
		t = p.peek()
	}
	return t
}

func (p *Parser) expectWord(cmdName string) (string, bool) {
	t := p.skipWhitespace()
	if !t.IsWord() {
		p.sink.WarnDocError(p.file, t.Line, ErrArgumentExpected, "argument expected for command `\\%s`", cmdName)
		return "", false
	}
	p.consume()
	return t.Name, true
}

func (p *Parser) buildAnchor(parent int, t Token) {
	name, ok := p.expectWord("anchor")
	if !ok {
		return
	}
	idx := p.arena.New(NAnchor, parent)
	n := p.arena.Nodes[idx]
	n.ID = name
	n.RefFile = p.ctx().File
	p.arena.Nodes[idx] = n
}

func (p *Parser) buildRef(parent int, t Token, isSubPage bool) {
	target, ok := p.expectWord("ref")
	if !ok {
		return
	}
	p.buildRefTarget(parent, target, t.Line, isSubPage)
}

// buildRefTarget resolves target against the symbol graph and appends the
// resulting Ref node, shared between \ref/\subpage and the XML-doc
// <see cref="..."/> form.
func (p *Parser) buildRefTarget(parent int, target string, line int, isSubPage bool) int {
	compound, member := p.graph.ResolveRef(p.ctx().Scope, target, p.ctx().InSeeBlock)
	idx := p.arena.New(NRef, parent)
	n := p.arena.Nodes[idx]
	n.Target = target
	n.IsSubPage = isSubPage
	if member != nil {
		n.RefFile = member.Owner
		n.RefToSection = false
	} else if compound != nil {
		n.RefFile = compound.File
	} else if sec := p.graph.FindSection(target); sec != nil {
		n.RefFile = ""
		n.RefAnchor = sec.ID
		n.RefToSection = true
		n.RefText = sec.Title
	} else if _, ambiguous := p.graph.FindFile(target); ambiguous {
		p.sink.WarnDocError(p.file, line, ErrAmbiguousRef, "reference to `%s` is ambiguous", target)
		n.RefText = target
	} else {
		p.sink.WarnDocError(p.file, line, ErrUnresolvedRef, "unable to resolve reference to `%s`", target)
		n.RefText = target
	}
	p.arena.Nodes[idx] = n
	return idx
}

// buildAutoLinkedWord handles a linkable word encountered in running text:
// when auto-linking is enabled and the word names a known member or
// compound, it becomes a LinkedWord carrying the resolved target; otherwise
// it stays a plain Word. Resolution misses are silent — prose is full of
// identifier-shaped words that name nothing.
func (p *Parser) buildAutoLinkedWord(parent int, t Token) {
	if p.cfg.AutoLinkSupport {
		compound, member := p.graph.ResolveRef(p.ctx().Scope, t.Name, p.ctx().InSeeBlock)
		if member != nil || compound != nil {
			idx := p.arena.New(NLinkedWord, parent)
			n := p.arena.Nodes[idx]
			n.Text = t.Name
			n.Ref = t.Name
			if member != nil {
				n.RefFile = member.Owner
				n.RefAnchor = member.Name
				n.Tooltip = member.Brief
			} else {
				n.RefFile = compound.File
			}
			p.arena.Nodes[idx] = n
			return
		}
	}
	idx := p.arena.New(NWord, parent)
	p.arena.Nodes[idx].Text = t.Name
}

func (p *Parser) buildCite(parent int, t Token) {
	target, ok := p.expectWord("cite")
	if !ok {
		return
	}
	idx := p.arena.New(NCite, parent)
	n := p.arena.Nodes[idx]
	n.Target = target
	if c := p.graph.FindCite(target); c != nil {
		n.RefText = c.Text
	} else {
		p.sink.WarnDocError(p.file, t.Line, ErrUnresolvedRef, "citation `%s` not found", target)
	}
	p.arena.Nodes[idx] = n
}

// buildLinkCommand consumes \link target ... \endlink: target is
// the next word, the description runs until \endlink is encountered.
func (p *Parser) buildLinkCommand(parent int, t Token) {
	target, ok := p.expectWord("link")
	if !ok {
		return
	}
	idx := p.arena.New(NLink, parent)
	n := p.arena.Nodes[idx]
	n.Target = target
	compound, anchor := p.graph.ResolveLink(p.ctx().Scope, target, p.ctx().InSeeBlock)
	switch {
	case anchor != "":
		n.RefToAnchor = true
		n.RefAnchor = anchor
	case compound != nil:
		n.RefFile = compound.File
	default:
		p.sink.WarnDocError(p.file, t.Line, ErrUnresolvedRef, "unable to resolve link target `%s`", target)
		n.RefText = target
	}
	p.arena.Nodes[idx] = n
	for {
		pt := p.peek()
		if pt.Kind == TokEnd || pt.Kind == TokNewPara {
			p.sink.WarnDocError(p.file, pt.Line, ErrArgumentExpected, "missing `\\endlink` for `\\link %s`", target)
			return
		}
		if pt.Kind == TokCommand && lookupCommand(pt.Name) == cmdEndlink {
			p.consume()
			return
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
		p.consume()
	}
}

func (p *Parser) buildInternalRef(parent int) {
	target, ok := p.expectWord("internalref")
	if !ok {
		return
	}
	idx := p.arena.New(NInternalRef, parent)
	p.arena.Nodes[idx].Target = target
}

// buildIndexEntry implements \addindex: the remainder of the line becomes
// the index entry's text.
func (p *Parser) buildIndexEntry(parent int, t Token) {
	idx := p.arena.New(NIndexEntry, parent)
	p.arena.Nodes[idx].Text = p.parseTitleLine()
}

// parseSimpleList implements \li: a run of consecutive \li commands
// forms one SimpleList whose items each hold the content up to the next
// \li or block boundary.
func (p *Parser) parseSimpleList(parent int) {
	listIdx := p.arena.New(NSimpleList, parent)
	p.pushNodeStack(listIdx)
	defer p.popNodeStack()
	for {
		t := p.peek()
		if t.Kind != TokCommand || lookupCommand(t.Name) != cmdLi {
			return
		}
		p.consume()
		itemIdx := p.arena.New(NSimpleListItem, listIdx)
		p.pushNodeStack(itemIdx)
		p.parseBlocks(itemIdx, func(pt Token) bool {
			return pt.Kind == TokCommand && isParaStopper(lookupCommand(pt.Name))
		})
		p.popNodeStack()
	}
}

func (p *Parser) applySetScope(t Token) {
	name, ok := p.expectWord("setscope")
	if !ok {
		return
	}
	p.ctx().Scope = name
	p.ctx().ContextName = name
}

// applyInheritDoc implements \inheritdoc: if the owning member
// reimplements another, that member's brief+detailed text is parsed into
// the current paragraph under a pushed context. Diagnostics from the
// nested parse are reported against the current file (p.file); Member
// carries no file/line of its own, so they are not attributed to the
// inherited definition.
func (p *Parser) applyInheritDoc(parent int, t Token) {
	text, ok := InheritDoc(p.graph, p.ctx().Owner)
	if !ok {
		return
	}
	nested, exit := p.ctxs.Enter(true, true)
	nested.Owner = p.ctx().Owner
	defer exit()
	sub := NewScanner()
	sub.Init(text, p.file)
	subParser := newParser(p.arena, sub, p.graph, p.sink, p.ctxs, p.file, p.cfg)
	subParser.parseBlocks(parent, func(Token) bool { return false })
}
