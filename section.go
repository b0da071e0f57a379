package docparser

// parseSection implements \section/\subsection/\subsubsection/
// \paragraph: a Section node nests strictly by level, terminated by a
// sibling or shallower section command or end of input (the shared
// parseBlocks stop predicate); any other block construct nests inside it.
func (p *Parser) parseSection(parent int, level int) {
	t := p.consume() // the \section/\subsection/... command token itself
	id, ok := p.expectWord(t.Name)
	if !ok {
		return
	}
	title := p.parseTitleLine()

	// Levels nest strictly one at a time: a \subsubsection directly
	// under a level-1 section is diagnosed and clamped to the next valid
	// level so the tree stays well-formed.
	open := 0
	for a := parent; a >= 0; a = p.arena.Nodes[a].Parent {
		if p.arena.Nodes[a].Kind == NSection {
			open = p.arena.Nodes[a].Level
			break
		}
	}
	if level > open+1 {
		p.sink.WarnDocError(p.file, t.Line, ErrUnexpectedToken,
			"command `\\%s` found without a containing section at level %d", t.Name, level-1)
		level = open + 1
	}

	idx := p.arena.New(NSection, parent)
	n := p.arena.Nodes[idx]
	n.Level = level
	n.ID = id
	n.Title = title
	n.Pos = Position{File: p.file, StartLine: t.Line}
	p.arena.Nodes[idx] = n

	p.ctx().Sections[id] = title

	p.pushNodeStack(idx)
	p.parseBlocks(idx, func(pt Token) bool {
		if pt.Kind != TokCommand {
			return false
		}
		if lvl, ok := sectionLevelFor[lookupCommand(pt.Name)]; ok {
			return lvl <= level
		}
		return false
	})
	p.popNodeStack()
}

// parseTitleLine captures the remainder of the current line as a
// section's title text: words and whitespace up to the end of the line.
func (p *Parser) parseTitleLine() string {
	p.src.PushState(StateTitle)
	defer p.src.PopState()
	title := ""
	for {
		t := p.peek()
		if t.IsWord() {
			p.consume()
			if title != "" {
				title += " "
			}
			title += t.Name
			continue
		}
		if t.Kind == TokWhiteSpace {
			p.consume()
			continue
		}
		break
	}
	return title
}
