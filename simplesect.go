package docparser

// parseSimpleSect implements the fixed-vocabulary simple sections
// (\see, \return, \author, \note, \warning, \par, ...): a SimpleSect
// node whose body runs until the next section, simple-section or
// parameter-style command or RCS tag; lists and tables nest inside the
// body. \par additionally takes a title line before its body.
func (p *Parser) parseSimpleSect(parent int, kind SimpleSectKind) {
	p.consume()
	idx := p.arena.New(NSimpleSect, parent)
	p.arena.Nodes[idx].SSKind = kind
	p.arena.Nodes[idx].SSTitle = -1

	if kind == SSPar {
		// \par's title is the remainder of its line; a bare \par starts
		// its body directly on the next line.
		if title := p.parseTitleLine(); title != "" {
			titleIdx := p.arena.New(NTitle, idx)
			p.arena.Nodes[titleIdx].Title = title
			p.arena.Nodes[idx].HasTitle = true
			p.arena.Nodes[idx].SSTitle = titleIdx
		}
	}

	if kind == SSReturn {
		p.ctx().HasReturnCommand = true
	}
	if kind == SSSee {
		// \sa bodies resolve their references more permissively.
		p.ctx().InSeeBlock = true
		defer func() { p.ctx().InSeeBlock = false }()
	}

	p.pushNodeStack(idx)
	p.parseBlocks(idx, func(pt Token) bool {
		if pt.Kind == TokRcsTag {
			return true
		}
		if pt.Kind != TokCommand {
			return false
		}
		id := lookupCommand(pt.Name)
		if _, ok := simpleSectKindFor[id]; ok {
			return true
		}
		if _, ok := sectionLevelFor[id]; ok {
			return true
		}
		switch id {
		case cmdParam, cmdTParam, cmdRetval, cmdException, cmdInternal,
			cmdEndinternal, cmdParblock, cmdEndparblock, cmdSecreflist,
			cmdEndsecreflist, cmdEndlink:
			return true
		}
		return false
	})
	p.popNodeStack()
}

// parseRcsSection handles a TokRcsTag: a `$Keyword: text$`-style keyword
// expansion becomes its own Rcs-kind SimpleSect titled after the keyword,
// with the captured text reparsed as nested doc content under a pushed
// context.
func (p *Parser) parseRcsSection(parent int) {
	t := p.consume()
	idx := p.arena.New(NSimpleSect, parent)
	titleIdx := p.arena.New(NTitle, idx)
	p.arena.Nodes[titleIdx].Title = t.SimpleSectName
	p.arena.Nodes[idx].SSKind = SSRcs
	p.arena.Nodes[idx].HasTitle = true
	p.arena.Nodes[idx].SSTitle = titleIdx

	nested, exit := p.ctxs.Enter(true, true)
	nested.Owner = p.ctx().Owner
	defer exit()
	sub := NewScanner()
	sub.Init(t.SimpleSectText, p.file)
	subParser := newParser(p.arena, sub, p.graph, p.sink, p.ctxs, p.file, p.cfg)
	subParser.parseBlocks(idx, func(Token) bool { return false })
}

// parseParamSect implements \param/\tparam/\retval/\exception: one or
// more comma-separated parameter names followed by their description,
// tracked into ParserContext.ParamsFound for the post-parse validation
// pass.
func (p *Parser) parseParamSect(parent int, kind ParamSectKind) {
	p.consume()

	direction := ParamUnspecified
	hasInOut := false
	if kind == PSParam {
		if d, ok := p.peekDirectionTag(); ok {
			hasInOut = true
			direction = d
		}
	}

	first, ok := p.expectWord("param")
	var names []string
	if ok {
		names = splitParamNames(first)
		for _, nm := range names {
			p.ctx().ParamsFound[nm] = true
		}
	}
	if kind == PSParam {
		p.ctx().HasParamCommand = true
	}

	idx := p.arena.New(NParamSect, parent)
	n := p.arena.Nodes[idx]
	n.PSKind = kind
	n.HasInOut = hasInOut
	n.Direction = direction
	n.Names = names
	p.arena.Nodes[idx] = n

	listIdx := p.arena.New(NParamList, idx)
	p.pushNodeStack(listIdx)
	p.parseBlocks(listIdx, func(pt Token) bool {
		if pt.Kind == TokRcsTag {
			return true
		}
		if pt.Kind != TokCommand {
			return false
		}
		id := lookupCommand(pt.Name)
		if _, ok := simpleSectKindFor[id]; ok {
			return true
		}
		if _, ok := sectionLevelFor[id]; ok {
			return true
		}
		switch id {
		case cmdParam, cmdTParam, cmdRetval, cmdException,
			cmdInternal, cmdEndinternal, cmdParblock, cmdEndparblock:
			return true
		}
		return false
	})
	p.popNodeStack()
}

// splitParamNames splits a single captured word like "x,y,z" into its
// comma-separated parameter names.
func splitParamNames(word string) []string {
	var names []string
	start := 0
	for i := 0; i <= len(word); i++ {
		if i == len(word) || word[i] == ',' {
			if i > start {
				names = append(names, word[start:i])
			}
			start = i + 1
		}
	}
	if len(names) == 0 {
		return []string{word}
	}
	return names
}

// peekDirectionTag recognizes the optional "[in]"/"[out]"/"[in,out]"
// direction tag immediately after \param, consuming it if present.
func (p *Parser) peekDirectionTag() (ParamDir, bool) {
	t := p.skipWhitespace()
	if t.Kind != TokWord {
		return ParamUnspecified, false
	}
	switch t.Name {
	case "[in]":
		p.consume()
		return ParamIn, true
	case "[out]":
		p.consume()
		return ParamOut, true
	case "[in,out]", "[out,in]":
		p.consume()
		return ParamInOut, true
	default:
		return ParamUnspecified, false
	}
}

// parseInternalBlock implements \internal ... \endinternal: its content
// is still parsed into the tree; a back-end visitor decides whether to
// render it, not the parser.
func (p *Parser) parseInternalBlock(parent int) {
	p.consume()
	idx := p.arena.New(NInternal, parent)
	p.pushNodeStack(idx)
	p.parseBlocks(idx, func(pt Token) bool {
		return pt.Kind == TokCommand && lookupCommand(pt.Name) == cmdEndinternal
	})
	p.popNodeStack()
	if t := p.peek(); t.Kind == TokCommand && lookupCommand(t.Name) == cmdEndinternal {
		p.consume()
	}
}

// parseParBlock implements \parblock ... \endparblock: groups
// several paragraphs as one logical unit inside a list item or section
// without the blank-line semantics of ordinary paragraph breaks.
func (p *Parser) parseParBlock(parent int) {
	p.consume()
	idx := p.arena.New(NParBlock, parent)
	p.pushNodeStack(idx)
	p.parseBlocks(idx, func(pt Token) bool {
		return pt.Kind == TokCommand && lookupCommand(pt.Name) == cmdEndparblock
	})
	p.popNodeStack()
	if t := p.peek(); t.Kind == TokCommand && lookupCommand(t.Name) == cmdEndparblock {
		p.consume()
	}
}

// parseSecRefList implements \secreflist ... \endsecreflist, a list of
// \secrefitem entries each naming a section id to be rendered as a
// mini table-of-contents.
func (p *Parser) parseSecRefList(parent int) {
	p.consume()
	idx := p.arena.New(NSecRefList, parent)
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind == TokCommand && lookupCommand(t.Name) == cmdEndsecreflist {
			p.consume()
			break
		}
		if t.Kind == TokCommand && lookupCommand(t.Name) == cmdSecrefitem {
			p.consume()
			if target, ok := p.expectWord("secrefitem"); ok {
				itemIdx := p.arena.New(NSecRefItem, idx)
				p.arena.Nodes[itemIdx].Target = target
			}
			continue
		}
		p.consume()
	}
}
