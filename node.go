package docparser

// Position is the location of a node in the source text, line-granular
// since a doc-comment token only reports a line, not a column range.
type Position struct {
	File      string
	StartLine int
	EndLine   int
}

// NodeKind tags the single sum-typed Node struct: rather
// than one Go struct per AST variant (which would force parent links to be
// either unsafe raw pointers or reference-counted handles), every node of a
// Root lives in that Root's Arena and is addressed by integer index. Only
// the fields relevant to a node's Kind are meaningful; see the field
// comments below.
type NodeKind int

const (
	NRoot NodeKind = iota
	NPara
	NSection
	NTitle
	NInternal
	NIndexEntry
	NAutoList
	NAutoListItem
	NSimpleList
	NSimpleListItem
	NHtmlList
	NHtmlListItem
	NHtmlDescList
	NHtmlDescTitle
	NHtmlDescData
	NHtmlTable
	NHtmlRow
	NHtmlCell
	NHtmlCaption
	NHtmlHeader
	NHtmlBlockQuote
	NParBlock
	NSecRefList
	NSecRefItem

	NWord
	NLinkedWord
	NWhiteSpace
	NSymbol
	NURL
	NLineBreak
	NHorRuler
	NStyleChange
	NAnchor
	NRef
	NInternalRef
	NLink
	NCite
	NFormula
	NXRefItem
	NImage
	NDotFile
	NMscFile
	NDiaFile
	NVerbatim
	NInclude
	NIncOperator
	NSimpleSect
	NParamSect
	NParamList
)

var nodeKindNames = map[NodeKind]string{
	NRoot: "Root", NPara: "Para", NSection: "Section", NTitle: "Title",
	NInternal: "Internal", NIndexEntry: "IndexEntry", NAutoList: "AutoList",
	NAutoListItem: "AutoListItem", NSimpleList: "SimpleList",
	NSimpleListItem: "SimpleListItem", NHtmlList: "HtmlList",
	NHtmlListItem: "HtmlListItem", NHtmlDescList: "HtmlDescList",
	NHtmlDescTitle: "HtmlDescTitle", NHtmlDescData: "HtmlDescData",
	NHtmlTable: "HtmlTable", NHtmlRow: "HtmlRow", NHtmlCell: "HtmlCell",
	NHtmlCaption: "HtmlCaption", NHtmlHeader: "HtmlHeader",
	NHtmlBlockQuote: "HtmlBlockQuote", NParBlock: "ParBlock",
	NSecRefList: "SecRefList", NSecRefItem: "SecRefItem",
	NWord: "Word", NLinkedWord: "LinkedWord", NWhiteSpace: "WhiteSpace",
	NSymbol: "Symbol", NURL: "URL", NLineBreak: "LineBreak",
	NHorRuler: "HorRuler", NStyleChange: "StyleChange", NAnchor: "Anchor",
	NRef: "Ref", NInternalRef: "InternalRef", NLink: "Link", NCite: "Cite",
	NFormula: "Formula", NXRefItem: "XRefItem", NImage: "Image",
	NDotFile: "DotFile", NMscFile: "MscFile", NDiaFile: "DiaFile",
	NVerbatim: "Verbatim", NInclude: "Include", NIncOperator: "IncOperator",
	NSimpleSect: "SimpleSect", NParamSect: "ParamSect", NParamList: "ParamList",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// HtmlListKind distinguishes HtmlList's Ordered/Unordered payload.
type HtmlListKind int

const (
	HtmlUnordered HtmlListKind = iota
	HtmlOrdered
)

// StyleKind enumerates the inline styles the style engine tracks.
type StyleKind int

const (
	StyleBold StyleKind = iota
	StyleItalic
	StyleCode
	StyleCenter
	StyleSmall
	StyleSub
	StyleSup
	StylePreformatted
	StyleDiv
	StyleSpan
)

// VerbatimType enumerates the Verbatim node's `type` payload.
type VerbatimType int

const (
	VerbCode VerbatimType = iota
	VerbHtmlOnly
	VerbManOnly
	VerbRtfOnly
	VerbLatexOnly
	VerbXmlOnly
	VerbDocbookOnly
	VerbDot
	VerbMsc
	VerbPlantUML
	VerbVerbatim
)

// SimpleSectKind enumerates the fixed command set of a Simple section.
type SimpleSectKind int

const (
	SSSee SimpleSectKind = iota
	SSReturn
	SSAuthor
	SSAuthors
	SSVersion
	SSSince
	SSDate
	SSNote
	SSWarning
	SSPre
	SSPost
	SSCopyright
	SSInvariant
	SSRemark
	SSAttention
	SSUser
	SSRcs
	SSPar
)

// ParamSectKind enumerates \param/\retval/\exception/\tparam.
type ParamSectKind int

const (
	PSParam ParamSectKind = iota
	PSRetVal
	PSException
	PSTemplateParam
)

// IncOpKind enumerates \line/\skipline/\skip/\until.
type IncOpKind int

const (
	IncLine IncOpKind = iota
	IncSkipLine
	IncSkip
	IncUntil
)

// Node is the tagged AST node. Every non-Root node has exactly one
// Parent; Children lists arena indices in insertion order. Preformatted
// is copied from the parent when a node is created (Arena.New), so it
// propagates down from a preformatted ancestor. HtmlListItem nodes are
// not marked preformatted, so content inside an HTML list item is not
// whitespace-preserved unless an ancestor already is.
type Node struct {
	Kind         NodeKind
	Parent       int // arena index, -1 for Root
	Children     []int
	Preformatted bool
	Pos          Position

	// Section / HtmlHeader
	Level int
	ID    string
	Title string

	// AutoList / AutoListItem
	Indent     int
	Enumerated bool
	Depth      int
	Number     int

	// HtmlList / HtmlListItem / HtmlTable / HtmlRow / HtmlCell / HtmlCaption / HtmlBlockQuote
	ListKind   HtmlListKind
	Attrs      []Attrib
	Header     bool // HtmlCell: th vs td
	NumColumns int  // HtmlTable: resolved column count
	ColSpan    int  // HtmlCell
	RowSpan    int  // HtmlCell

	// SecRefItem
	Target string

	// Word / WhiteSpace / Symbol
	Text      string
	Chars     string
	SymbolKnd string

	// URL / Image / media files
	URL      string
	IsEMail  bool
	MediaTy  string
	Name     string
	MediaTitle string
	Size     string

	// LinkedWord / Anchor / Ref / Link / Cite
	Ref           string
	RefFile       string
	RefAnchor     string
	Tooltip       string
	RefText       string
	RefToSection  bool
	RefToAnchor   bool
	IsSubPage     bool

	// StyleChange
	Style    StyleKind
	Enter    bool // true = enter, false = leave
	StackPos int  // node-stack depth at which this enter was pushed

	// Formula
	FormulaID   string
	FormulaText string

	// XRefItem
	ListID string
	Key    string

	// Verbatim
	Lang    string
	Body    string
	VerbTy  VerbatimType

	// Include
	IncType string
	File    string
	BlockID string
	IncText string

	// IncOperator
	OpKind  IncOpKind
	Pattern string
	OpText  string
	First   bool
	Last    bool

	// SimpleSect
	SSKind    SimpleSectKind
	HasTitle  bool
	SSTitle   int // arena index of Title node, or -1

	// ParamSect / ParamList
	PSKind           ParamSectKind
	HasInOut         bool
	HasTypeSpecifier bool
	Direction        ParamDir
	Types            []string
	Names            []string
}

// Arena owns every Node belonging to one Root: deleting a
// Root drops the whole arena, never leaving dangling cross-node pointers.
type Arena struct {
	Nodes []Node
}

func newArena() *Arena {
	return &Arena{Nodes: make([]Node, 0, 64)}
}

// New appends a fresh node of kind with the given parent, returning its
// arena index. Preformatted is inherited from the parent so whitespace
// preservation holds without each call site having to thread it through.
func (a *Arena) New(kind NodeKind, parent int) int {
	pre := false
	if parent >= 0 {
		pre = a.Nodes[parent].Preformatted
	}
	idx := len(a.Nodes)
	a.Nodes = append(a.Nodes, Node{Kind: kind, Parent: parent, Preformatted: pre})
	if parent >= 0 {
		a.Nodes[parent].Children = append(a.Nodes[parent].Children, idx)
	}
	return idx
}

// Append sets child's Parent to parent and adds it as parent's last child.
// It does not remove child from a previous parent's Children.
func (a *Arena) Append(parent, child int) {
	a.Nodes[child].Parent = parent
	a.Nodes[parent].Children = append(a.Nodes[parent].Children, child)
}

// Root is a frozen, fully parsed document tree: mutated only by its
// owning parser, consumed by back-end visitors via Accept, then destroyed
// with its Arena.
type Root struct {
	Arena     *Arena
	RootIdx   int
	Sections  map[string]int         // section id -> arena index, populated from \section-family commands at the end of ParseDoc
	XRefLists map[string][]XRefItem  // list id -> registered items, populated by \xrefitem
}

// Node returns the node at idx. Valid for the lifetime of r.
func (r *Root) Node(idx int) *Node { return &r.Arena.Nodes[idx] }

// ParentOf returns the arena index of idx's parent, or -1 for the root.
func (r *Root) ParentOf(idx int) int { return r.Arena.Nodes[idx].Parent }

// ChildrenOf returns idx's children in insertion order.
func (r *Root) ChildrenOf(idx int) []int { return r.Arena.Nodes[idx].Children }

// PathToRoot walks parent links to the Root, used by tests to confirm
// every node reaches it, and to compute Preformatted-ancestor lookups
// lazily if ever needed.
func (r *Root) PathToRoot(idx int) []int {
	path := []int{idx}
	for idx != r.RootIdx {
		idx = r.Arena.Nodes[idx].Parent
		if idx < 0 {
			break
		}
		path = append(path, idx)
	}
	return path
}
