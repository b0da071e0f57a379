package docparser

// parseHtmlStructural implements the bounded structural HTML subset:
// ul/ol, dl, table, blockquote, h1-h6 and p. Each
// maps to its own Html* Node kind; <ul>/<ol> build HtmlList/HtmlListItem
// nodes, which are distinct kinds from the AutoList/AutoListItem nodes
// of "-"/"-#" auto-lists.
func (p *Parser) parseHtmlStructural(parent int, open Token) {
	switch open.Name {
	case "ul", "ol":
		p.consume()
		p.parseHtmlList(parent, open)
	case "dl":
		p.consume()
		p.parseHtmlDescList(parent)
	case "table":
		p.consume()
		p.parseHtmlTable(parent, open)
	case "blockquote":
		p.consume()
		p.parseHtmlBlockQuote(parent)
	case "p":
		p.consume() // explicit paragraph break; the caller's loop starts a fresh one
	case "h1", "h2", "h3", "h4", "h5", "h6":
		p.consume()
		p.parseHtmlHeader(parent, open)
	default:
		p.consume()
	}
}

func (p *Parser) parseHtmlList(parent int, open Token) {
	idx := p.arena.New(NHtmlList, parent)
	n := p.arena.Nodes[idx]
	n.ListKind = HtmlUnordered
	if open.Name == "ol" {
		n.ListKind = HtmlOrdered
	}
	n.Attrs = open.Attribs
	p.arena.Nodes[idx] = n

	p.pushNodeStack(idx)
	defer p.popNodeStack()

	sawItem := false
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == open.Name {
			p.consume()
			break
		}
		if t.Kind == TokHtmlTag && t.Name == "li" && !t.EndTag {
			p.consume()
			sawItem = true
			itemIdx := p.arena.New(NHtmlListItem, idx)
			p.pushNodeStack(itemIdx)
			p.parseBlocks(itemIdx, func(pt Token) bool {
				return pt.Kind == TokHtmlTag && pt.Name == "li" && pt.EndTag ||
					pt.Kind == TokHtmlTag && pt.Name == "li" && !pt.EndTag ||
					pt.Kind == TokHtmlTag && pt.Name == open.Name && pt.EndTag
			})
			p.popNodeStack()
			if pt := p.peek(); pt.Kind == TokHtmlTag && pt.Name == "li" && pt.EndTag {
				p.consume()
			}
			continue
		}
		p.consume()
	}
	if !sawItem {
		// an empty <ul></ul>: report it, and synthesize one empty item so
		// visitors can assume every list has at least one child.
		p.sink.WarnDocError(p.file, open.Line, ErrUnexpectedToken, "empty list!")
		p.arena.New(NHtmlListItem, idx)
	}
}

func (p *Parser) parseHtmlDescList(parent int) {
	idx := p.arena.New(NHtmlDescList, parent)
	p.pushNodeStack(idx)
	defer p.popNodeStack()
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == "dl" {
			p.consume()
			break
		}
		switch {
		case t.Kind == TokHtmlTag && t.Name == "dt" && !t.EndTag:
			p.consume()
			titleIdx := p.arena.New(NHtmlDescTitle, idx)
			p.pushNodeStack(titleIdx)
			p.parseBlocks(titleIdx, func(pt Token) bool {
				return pt.Kind == TokHtmlTag && (pt.Name == "dt" || pt.Name == "dd" || pt.Name == "dl")
			})
			p.popNodeStack()
		case t.Kind == TokHtmlTag && t.Name == "dd" && !t.EndTag:
			p.consume()
			dataIdx := p.arena.New(NHtmlDescData, idx)
			p.pushNodeStack(dataIdx)
			p.parseBlocks(dataIdx, func(pt Token) bool {
				return pt.Kind == TokHtmlTag && (pt.Name == "dt" || pt.Name == "dd" || pt.Name == "dl")
			})
			p.popNodeStack()
		default:
			p.consume()
		}
	}
}

func (p *Parser) parseHtmlBlockQuote(parent int) {
	idx := p.arena.New(NHtmlBlockQuote, parent)
	p.pushNodeStack(idx)
	p.parseBlocks(idx, func(pt Token) bool {
		return pt.Kind == TokHtmlTag && pt.EndTag && pt.Name == "blockquote"
	})
	p.popNodeStack()
	if t := p.peek(); t.Kind == TokHtmlTag && t.EndTag && t.Name == "blockquote" {
		p.consume()
	}
}

func (p *Parser) parseHtmlHeader(parent int, open Token) {
	level := int(open.Name[1] - '0')
	idx := p.arena.New(NHtmlHeader, parent)
	n := p.arena.Nodes[idx]
	n.Level = level
	p.arena.Nodes[idx] = n
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
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == open.Name {
			p.consume()
		}
		break
	}
	p.arena.Nodes[idx].Title = title
}

// parseHtmlTable builds the table grid: each <tr>'s <td>/<th> cells
// carry a colspan/rowspan attribute; NumColumns is resolved as the widest
// row's column count once carried-over rowspans from earlier rows are
// accounted for.
func (p *Parser) parseHtmlTable(parent int, open Token) {
	idx := p.arena.New(NHtmlTable, parent)
	p.arena.Nodes[idx].Attrs = open.Attribs
	p.pushNodeStack(idx)
	defer p.popNodeStack()

	var rowSpanCarry []int // remaining row count per column carried over by rowspan
	maxCols := 0
	var rowCols []int

	for {
		t := p.peek()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == "table" {
			p.consume()
			break
		}
		switch {
		case t.Kind == TokHtmlTag && t.Name == "caption" && !t.EndTag:
			p.consume()
			capIdx := p.arena.New(NHtmlCaption, idx)
			p.pushNodeStack(capIdx)
			p.parseBlocks(capIdx, func(pt Token) bool {
				return pt.Kind == TokHtmlTag && pt.Name == "caption"
			})
			p.popNodeStack()
			if pt := p.peek(); pt.Kind == TokHtmlTag && pt.Name == "caption" && pt.EndTag {
				p.consume()
			}
		case t.Kind == TokHtmlTag && t.Name == "tr" && !t.EndTag:
			p.consume()
			rowIdx := p.arena.New(NHtmlRow, idx)
			col, spawned := p.parseHtmlRow(rowIdx)
			col += len(rowSpanCarry)
			rowCols = append(rowCols, col)
			if col > maxCols {
				maxCols = col
			}
			aged := rowSpanCarry[:0]
			for _, c := range rowSpanCarry {
				if c > 1 {
					aged = append(aged, c-1)
				}
			}
			rowSpanCarry = append(aged, spawned...)
		case t.Kind == TokWhiteSpace || t.Kind == TokNewPara:
			p.consume()
		default:
			// anything else directly inside <table> (stray text, an
			// unsupported tag like <tbody>, ...) isn't a row or caption.
			p.sink.WarnDocError(p.file, t.Line, ErrTableMalformed,
				"unexpected content directly inside <table>; only <tr> and <caption> are allowed")
			p.consume()
		}
	}
	p.arena.Nodes[idx].NumColumns = maxCols

	for i, col := range rowCols {
		if col != maxCols {
			p.sink.WarnDocError(p.file, open.Line, ErrTableMalformed,
				"row %d of table has %d column(s), expected %d", i+1, col, maxCols)
		}
	}
}

// parseHtmlRow consumes one <tr>...</tr>, returning the column count its
// own cells occupy plus, for each column a cell spans into later rows, a
// remaining-row counter the caller folds into those rows' counts.
func (p *Parser) parseHtmlRow(rowIdx int) (int, []int) {
	p.pushNodeStack(rowIdx)
	defer p.popNodeStack()
	col := 0
	var spawned []int
	for {
		t := p.peek()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind == TokHtmlTag && t.EndTag && t.Name == "tr" {
			p.consume()
			break
		}
		if t.Kind == TokHtmlTag && !t.EndTag && t.Name == "tr" {
			break // next row opened without closing this one
		}
		if t.Kind == TokHtmlTag && (t.Name == "td" || t.Name == "th") && !t.EndTag {
			p.consume()
			cellIdx := p.arena.New(NHtmlCell, rowIdx)
			n := p.arena.Nodes[cellIdx]
			n.Header = t.Name == "th"
			n.Attrs = t.Attribs
			n.ColSpan = attrInt(t.Attribs, "colspan", 1)
			n.RowSpan = attrInt(t.Attribs, "rowspan", 1)
			p.arena.Nodes[cellIdx] = n
			col += n.ColSpan
			for j := 0; n.RowSpan > 1 && j < n.ColSpan; j++ {
				spawned = append(spawned, n.RowSpan-1)
			}
			p.pushNodeStack(cellIdx)
			p.parseBlocks(cellIdx, func(pt Token) bool {
				return pt.Kind == TokHtmlTag && (pt.Name == "td" || pt.Name == "th" || pt.Name == "tr")
			})
			p.popNodeStack()
			if pt := p.peek(); pt.Kind == TokHtmlTag && pt.EndTag && (pt.Name == "td" || pt.Name == "th") {
				p.consume()
			}
			continue
		}
		p.consume()
	}
	return col, spawned
}
