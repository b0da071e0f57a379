package docparser

import "strings"

// ParseDoc is the top-level entry point: it splices copydoc/copybrief/
// copydetails/inheritdoc relations, lexes and parses the result into a
// fresh Root, runs the parameter/return validation pass against member,
// and returns the tree. Diagnostics are recorded on cfg.Sink (or, when it
// is nil, a stderr log sink from NewLogSink(nil)) and never surface as a Go error: a Root is always
// returned, possibly with recorded errors reachable by passing a
// RecordingSink as cfg.Sink.
func ParseDoc(cfg *Configuration, graph SymbolGraph, file string, startLine int, context string, member *Member, input string) *Root {
	return ParseDocWith(cfg, graph, file, startLine, context, member, input, ParseDocOpts{})
}

// ParseDocOpts bundles ParseDoc's optional arguments: example
// attribution, single-line brief parsing, and the search-index flags. The index flags
// (IndexWords, LinkFromIndex) are accepted but not read by the parser; they don't alter the tree.
type ParseDocOpts struct {
	IndexWords    bool
	IsExample     bool
	ExampleName   string
	SingleLine    bool
	LinkFromIndex bool
}

// ParseDocWith is ParseDoc with the optional arguments spelled out.
func ParseDocWith(cfg *Configuration, graph SymbolGraph, file string, startLine int, context string, member *Member, input string, opts ParseDocOpts) *Root {
	if cfg == nil {
		cfg = NewConfiguration()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = NewLogSink(nil)
	}

	stack := &CopyStack{}
	spliced := PreprocessCopyDoc(input, graph, stack, sink, file, startLine)

	arena := newArena()
	rootIdx := arena.New(NRoot, -1)
	root := &Root{Arena: arena, RootIdx: rootIdx, Sections: map[string]int{}}

	ctxs := &ContextStack{}
	pctx, exit := ctxs.Enter(false, false)
	defer exit()
	pctx.Scope = context
	pctx.ContextName = context
	pctx.File = file
	pctx.Owner = member
	pctx.IsExample = opts.IsExample
	pctx.ExampleName = opts.ExampleName
	if member != nil {
		pctx.HasParamCommand = false
	}

	scanner := NewScanner()
	scanner.Init(spliced, file)

	parser := newParser(arena, scanner, graph, sink, ctxs, file, cfg)
	stop := func(Token) bool { return false }
	if opts.SingleLine {
		stop = func(t Token) bool { return t.Kind == TokNewPara }
	}
	parser.parseBlocks(rootIdx, stop)

	UnmatchedStyleOpen(pctx, file, sink)

	ValidateParams(pctx, member, cfg, sink, file, startLine)
	ValidateReturn(pctx, member, cfg, sink, file, startLine)

	for id, title := range pctx.Sections {
		root.Sections[id] = findSectionNode(arena, rootIdx, id, title)
	}
	root.XRefLists = parser.xrefLists

	return root
}

// findSectionNode locates the Section node matching id within the tree
// rooted at idx (depth-first), returning -1 if the dictionary entry
// doesn't correspond to a surviving node.
func findSectionNode(arena *Arena, idx int, id, title string) int {
	n := arena.Nodes[idx]
	if n.Kind == NSection && n.ID == id {
		return idx
	}
	for _, c := range n.Children {
		if found := findSectionNode(arena, c, id, title); found >= 0 {
			return found
		}
	}
	return -1
}

// ParseText parses input with the same block grammar as ParseDoc but
// with no surrounding member/compound context: used for
// page bodies, group descriptions and other free-standing text that
// isn't attached to a symbol-graph entry.
func ParseText(cfg *Configuration, graph SymbolGraph, file string, input string) *Root {
	return ParseDoc(cfg, graph, file, 1, "", nil, input)
}

// FindSections scans input for \section/\subsection/\subsubsection/
// \paragraph/\anchor titles without building a full AST: used by a
// symbol-graph builder to populate its section dictionary before the real
// parse runs, so \ref targets defined later in the same file still
// resolve.
func FindSections(input string, file string) []Section {
	var out []Section
	scanner := NewScanner()
	scanner.Init(input, file)
	for {
		t := scanner.Next()
		if t.Kind == TokEnd {
			break
		}
		if t.Kind != TokCommand {
			continue
		}
		id := lookupCommand(t.Name)
		switch id {
		case cmdSection, cmdSubsection, cmdSubsubsection, cmdParagraphCmd:
			idTok := nextNonSpace(scanner)
			if !idTok.IsWord() {
				continue
			}
			title := scanTitleWords(scanner)
			out = append(out, Section{ID: idTok.Name, Title: title})
		case cmdAnchor:
			idTok := nextNonSpace(scanner)
			if idTok.IsWord() {
				out = append(out, Section{ID: idTok.Name, Title: ""})
			}
		}
	}
	return out
}

func nextNonSpace(scanner *Scanner) Token {
	for {
		t := scanner.Next()
		if t.Kind != TokWhiteSpace {
			return t
		}
	}
}

func scanTitleWords(scanner *Scanner) string {
	scanner.PushState(StateTitle)
	defer scanner.PopState()
	var words []string
	for {
		t := scanner.Next()
		switch t.Kind {
		case TokWord, TokLinkableWord:
			words = append(words, t.Name)
		case TokWhiteSpace:
			continue
		default:
			return strings.Join(words, " ")
		}
	}
}
