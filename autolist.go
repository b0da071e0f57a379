package docparser

// parseAutoList implements the indentation-driven auto-list grammar:
// a run of TokListItem tokens at the same indent becomes one
// AutoList's items; a deeper indent nests a new AutoList inside the
// current item by recursing through parseBlocks, which itself calls back
// into parseAutoList when it meets the deeper TokListItem.
func (p *Parser) parseAutoList(parent int, _ int) {
	first := p.peek()
	indent := first.Indent
	enumerated := first.IsEnumList

	p.src.BeginAutoList()
	defer p.src.EndAutoList()

	p.listIndents = append(p.listIndents, indent)
	defer func() { p.listIndents = p.listIndents[:len(p.listIndents)-1] }()

	depth := 1
	for a := parent; a >= 0; a = p.arena.Nodes[a].Parent {
		if p.arena.Nodes[a].Kind == NAutoList {
			depth++
		}
	}

	listIdx := p.arena.New(NAutoList, parent)
	n := p.arena.Nodes[listIdx]
	n.Indent = indent
	n.Enumerated = enumerated
	n.Depth = depth
	p.arena.Nodes[listIdx] = n

	p.pushNodeStack(listIdx)
	defer p.popNodeStack()

	number := 0
	for {
		t := p.peek()
		if t.Kind != TokListItem || t.Indent < indent {
			break
		}
		if t.Indent == indent && t.IsEnumList != enumerated {
			// A bullet item after an enumerated run (or vice versa) starts
			// a fresh sibling list rather than continuing this one.
			break
		}
		if t.Indent > indent {
			// A deeper item nests under the list's last item rather than
			// belonging to this list; let the caller's own recursion
			// (via parseBlocks on that item) absorb it.
			break
		}
		p.consume()
		number++
		itemIdx := p.arena.New(NAutoListItem, listIdx)
		in := p.arena.Nodes[itemIdx]
		in.Indent = t.Indent
		in.Enumerated = t.IsEnumList
		in.Number = number
		p.arena.Nodes[itemIdx] = in

		p.pushNodeStack(itemIdx)
		p.parseBlocks(itemIdx, func(pt Token) bool {
			if pt.Kind == TokListItem && pt.Indent <= indent {
				return true
			}
			if pt.Kind == TokEndList {
				return true
			}
			return false
		})
		p.popNodeStack()

		if pt := p.peek(); pt.Kind == TokEndList {
			p.consume()
		}
	}
}
