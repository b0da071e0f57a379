package docparser

// Lang tags the source language of the owning member, used by the
// validation pass for its two language-specific carve-outs: Python's
// implicit `self` and Fortran's case-insensitive parameter names.
type Lang int

const (
	LangNone Lang = iota
	LangPython
	LangFortran
	LangObjC
)

// styleEntry is one open inline style awaiting its matching leave: the
// style stack and initial-style stack hold these, referencing
// the StyleChange(enter) node by arena index.
type styleEntry struct {
	Style    StyleKind
	NodeIdx  int
	StackPos int
}

// ParserContext is the per-parse "current context": all the state one
// running parse mutates, bundled into one value passed explicitly and
// held on a stack rather than as process-wide mutable state.
type ParserContext struct {
	Scope       string // current scope (enclosing class/namespace name)
	ContextName string // current context name, usually same as Scope

	InSeeBlock     bool
	XMLComment     bool
	InsideHTMLLink bool

	NodeStack  []int // currently-open structural nodes, by arena index
	StyleStack []styleEntry
	InitStyleStack []styleEntry

	CopyStack []string // definitions being expanded, for cycle detection

	File         string
	RelativePath string

	HasParamCommand  bool
	HasReturnCommand bool
	ParamsFound      map[string]bool

	Owner *Member // owning member, if any
	Lang  Lang

	IsExample     bool
	ExampleName   string

	Sections map[string]string // section dictionary collected during parse

	SearchIndexURL string

	IncludeFile   string
	IncludeBuffer []string
	IncludeOffset int

	TokenBuffer []Token
}

func newParserContext() *ParserContext {
	return &ParserContext{
		ParamsFound: map[string]bool{},
		Sections:    map[string]string{},
	}
}

// copy returns a value copy of ctx with independent slices/maps, the way
// push_context(save_param_info) needs a base it can selectively carry
// param-tracking state out of.
func (ctx *ParserContext) copy() *ParserContext {
	c := *ctx
	c.NodeStack = append([]int(nil), ctx.NodeStack...)
	c.StyleStack = append([]styleEntry(nil), ctx.StyleStack...)
	c.InitStyleStack = append([]styleEntry(nil), ctx.InitStyleStack...)
	c.CopyStack = append([]string(nil), ctx.CopyStack...)
	c.ParamsFound = map[string]bool{}
	for k, v := range ctx.ParamsFound {
		c.ParamsFound[k] = v
	}
	c.Sections = map[string]string{}
	for k, v := range ctx.Sections {
		c.Sections[k] = v
	}
	c.IncludeBuffer = append([]string(nil), ctx.IncludeBuffer...)
	c.TokenBuffer = append([]Token(nil), ctx.TokenBuffer...)
	return &c
}

// ContextStack is the stack of ParserContexts pushed on entry to ParseDoc,
// each \copydoc expansion, and RCS reparse, popped on return.
type ContextStack struct {
	frames []*ParserContext
}

// Current returns the top-of-stack context. Panics if the stack is empty;
// callers always push a fresh context before touching Current.
func (s *ContextStack) Current() *ParserContext {
	return s.frames[len(s.frames)-1]
}

// Push pushes a new context frame. If saveParamInfo is true, the new
// frame's ParamsFound/HasParamCommand/HasReturnCommand start as a copy of
// the current frame's, so nested \copydoc expansions and RCS reparses
// within the same member keep contributing to the same parameter
// documentation tally.
func (s *ContextStack) Push(saveParamInfo bool) *ParserContext {
	var next *ParserContext
	if len(s.frames) == 0 {
		next = newParserContext()
	} else {
		cur := s.Current()
		next = newParserContext()
		next.Scope = cur.Scope
		next.ContextName = cur.ContextName
		next.File = cur.File
		next.RelativePath = cur.RelativePath
		next.Owner = cur.Owner
		next.Lang = cur.Lang
		if saveParamInfo {
			next.HasParamCommand = cur.HasParamCommand
			next.HasReturnCommand = cur.HasReturnCommand
			for k, v := range cur.ParamsFound {
				next.ParamsFound[k] = v
			}
		}
	}
	s.frames = append(s.frames, next)
	return next
}

// Pop pops the top frame. If keepParamInfo is true, the popped frame's
// param-tracking state is merged back into the new top frame, so every
// parse path, including cycle detection, restores the previous context
// while optionally carrying param info upward.
func (s *ContextStack) Pop(keepParamInfo bool) {
	popped := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if keepParamInfo && len(s.frames) > 0 {
		cur := s.Current()
		cur.HasParamCommand = cur.HasParamCommand || popped.HasParamCommand
		cur.HasReturnCommand = cur.HasReturnCommand || popped.HasReturnCommand
		for k := range popped.ParamsFound {
			cur.ParamsFound[k] = true
		}
	}
}

// Len reports the number of frames currently on the stack, used by
// balance assertions in tests.
func (s *ContextStack) Len() int { return len(s.frames) }

// Enter pushes a context and returns an exit func that pops it,
// guaranteeing restoration on every return path (normal, early error, or
// cycle detection) via `defer exit()` at the call site.
func (s *ContextStack) Enter(saveParamInfo, keepParamInfo bool) (ctx *ParserContext, exit func()) {
	ctx = s.Push(saveParamInfo)
	return ctx, func() { s.Pop(keepParamInfo) }
}
