package docparser

// Visitor is the protocol the AST exposes to back-ends. VisitPre
// is called on entry to a node, VisitPost on exit, both in depth-first
// order with children visited in insertion order.
type Visitor interface {
	VisitPre(r *Root, idx int)
	VisitPost(r *Root, idx int)

	// WantsCaptionFirst lets the back-end state its own ordering
	// preference for HtmlTable captions directly. The HTML back-end
	// returns true; every other back-end (LaTeX, RTF, XML, ...) returns
	// false.
	WantsCaptionFirst() bool
}

// Accept performs the depth-first pre/post traversal starting at idx,
// honoring the table-caption ordering exception: when
// v.WantsCaptionFirst(), an HtmlTable's HtmlCaption child is visited
// before its HtmlRow children; otherwise after.
func Accept(r *Root, idx int, v Visitor) {
	n := r.Node(idx)
	v.VisitPre(r, idx)

	if n.Kind == NHtmlTable {
		acceptTableChildren(r, idx, v)
	} else {
		for _, c := range n.Children {
			Accept(r, c, v)
		}
	}

	v.VisitPost(r, idx)
}

func acceptTableChildren(r *Root, tableIdx int, v Visitor) {
	children := r.Node(tableIdx).Children
	var caption int = -1
	rows := make([]int, 0, len(children))
	for _, c := range children {
		if r.Node(c).Kind == NHtmlCaption {
			caption = c
		} else {
			rows = append(rows, c)
		}
	}
	visitCaption := func() {
		if caption >= 0 {
			Accept(r, caption, v)
		}
	}
	visitRows := func() {
		for _, row := range rows {
			Accept(r, row, v)
		}
	}
	if v.WantsCaptionFirst() {
		visitCaption()
		visitRows()
	} else {
		visitRows()
		visitCaption()
	}
}
