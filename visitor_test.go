package docparser

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderVisitor records pre/post events so traversal order can be asserted.
type orderVisitor struct {
	captionFirst bool
	events       []string
}

func (v *orderVisitor) VisitPre(r *Root, idx int) {
	v.events = append(v.events, "pre:"+r.Node(idx).Kind.String())
}

func (v *orderVisitor) VisitPost(r *Root, idx int) {
	v.events = append(v.events, "post:"+r.Node(idx).Kind.String())
}

func (v *orderVisitor) WantsCaptionFirst() bool { return v.captionFirst }

func indexOf(events []string, want string) int {
	for i, e := range events {
		if e == want {
			return i
		}
	}
	return -1
}

func TestTableCaptionOrderDependsOnVisitor(t *testing.T) {
	root := parseSilent(t, "<table><caption>C</caption><tr><td>x</td></tr></table>")

	html := &orderVisitor{captionFirst: true}
	Accept(root, root.RootIdx, html)
	latex := &orderVisitor{captionFirst: false}
	Accept(root, root.RootIdx, latex)

	capHTML := indexOf(html.events, "pre:HtmlCaption")
	rowHTML := indexOf(html.events, "pre:HtmlRow")
	require.GreaterOrEqual(t, capHTML, 0)
	require.GreaterOrEqual(t, rowHTML, 0)
	assert.Less(t, capHTML, rowHTML)

	capTex := indexOf(latex.events, "pre:HtmlCaption")
	rowTex := indexOf(latex.events, "pre:HtmlRow")
	require.GreaterOrEqual(t, capTex, 0)
	require.GreaterOrEqual(t, rowTex, 0)
	assert.Greater(t, capTex, rowTex)

	// Both back-ends visit exactly the same node set, each node once.
	a := append([]string(nil), html.events...)
	b := append([]string(nil), latex.events...)
	sort.Strings(a)
	sort.Strings(b)
	assert.Equal(t, a, b)
}

func TestVisitorPrePostBalanced(t *testing.T) {
	root := parseSilent(t, "one <b>two</b>\n\n- item")
	v := &orderVisitor{}
	Accept(root, root.RootIdx, v)
	depth := 0
	for _, e := range v.events {
		if e[:3] == "pre" {
			depth++
		} else {
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Zero(t, depth)
}
