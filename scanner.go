package docparser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// recognizedHtmlTags is the bounded HTML/XML-doc tag subset. Anything
// else is not tokenized as a tag: its '<' is passed through as literal
// text, never treated as a structural tag, and no diagnostic is raised.
var recognizedHtmlTags = map[string]bool{
	"b": true, "em": true, "i": true, "code": true, "sub": true, "sup": true,
	"center": true, "small": true, "div": true, "span": true, "pre": true,
	"br": true, "hr": true, "img": true, "a": true, "p": true, "ul": true,
	"ol": true, "li": true, "dl": true, "dt": true, "dd": true, "table": true,
	"tr": true, "td": true, "th": true, "caption": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"summary": true, "remarks": true, "value": true, "para": true,
	"example": true, "description": true, "c": true, "param": true,
	"typeparam": true, "paramref": true, "typeparamref": true,
	"exception": true, "item": true, "listheader": true, "returns": true,
	"term": true, "see": true, "seealso": true, "list": true, "include": true,
	"permission": true, "inheritdoc": true,
}

// verbatimEndMarker maps a body-capturing LexState to the bare command
// name (without sigil) that closes it.
var verbatimEndMarker = map[LexState]string{
	StateCode:       "endcode",
	StateHtmlOnly:   "endhtmlonly",
	StateManOnly:    "endmanonly",
	StateRtfOnly:    "endrtfonly",
	StateLatexOnly:  "endlatexonly",
	StateXmlOnly:    "endxmlonly",
	StateDocbookOnly: "enddocbookonly",
	StateVerbatim:   "endverbatim",
	StateDot:        "enddot",
	StateMsc:        "endmsc",
	StatePlantUML:   "enduml",
	StateFormula:    "endformula",
}

var (
	listItemRe    = regexp.MustCompile(`^([ \t]*)([-*]|-#)(\s+|$)`)
	cmdRe         = regexp.MustCompile(`^[\\@]([A-Za-z][A-Za-z0-9]*)`)
	urlRe         = regexp.MustCompile(`^(https?|ftp|file)://[^\s<>]+`)
	escapeSymRe   = regexp.MustCompile(`^[\\@](\\|@|<|>|&|\$|#|%|\||::|")`)
	dashRe        = regexp.MustCompile(`^(---|--)`)
	rcsTagRe      = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)\s*:([^$\n]*)\$`)
	formulaOpenRe = regexp.MustCompile(`^[\\@]f[$\[{]`)
	// linkableWordRe matches identifier-shaped words (optionally
	// ::-qualified, #-separated, or ()-suffixed) the auto-linker may
	// resolve against the symbol graph.
	linkableWordRe = regexp.MustCompile(`^~?[A-Za-z_][A-Za-z0-9_]*((::|#)~?[A-Za-z_][A-Za-z0-9_]*)*(\(\))?$`)
)

// Scanner is the concrete TokenSource the parser runs against. The
// parser never inspects its internals; it pulls tokens through Next() and
// pushes/pops lexical states to steer what "the next token" means. The
// recognized HTML/XML-doc tag subset is tokenized with
// golang.org/x/net/html.NewTokenizer.
type Scanner struct {
	input    string
	pos      int
	line     int
	filename string

	states     []LexState
	insidePre  bool
	pushedBack []string
	autoList   bool
}

var _ TokenSource = (*Scanner)(nil)

// NewScanner constructs a Scanner ready for Init.
func NewScanner() *Scanner { return &Scanner{} }

func (s *Scanner) Init(input, filename string) {
	s.input = input
	s.pos = 0
	s.line = 1
	s.filename = filename
	s.states = []LexState{StatePara}
	s.insidePre = false
	s.pushedBack = nil
	s.autoList = false
}

func (s *Scanner) top() LexState {
	if len(s.states) == 0 {
		return StatePara
	}
	return s.states[len(s.states)-1]
}

func (s *Scanner) PushState(st LexState) { s.states = append(s.states, st) }
func (s *Scanner) PopState() {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
	}
}
func (s *Scanner) SetState(st LexState) {
	if len(s.states) == 0 {
		s.states = []LexState{st}
		return
	}
	s.states[len(s.states)-1] = st
}
func (s *Scanner) PushBackTag(name string) { s.pushedBack = append(s.pushedBack, name) }
func (s *Scanner) BeginAutoList()          { s.autoList = true }
func (s *Scanner) EndAutoList()            { s.autoList = false }
func (s *Scanner) SetInsidePre(v bool)     { s.insidePre = v }
func (s *Scanner) CurrentLine() int        { return s.line }

func (s *Scanner) advance(n int) string {
	consumed := s.input[s.pos : s.pos+n]
	s.line += strings.Count(consumed, "\n")
	s.pos += n
	return consumed
}

func (s *Scanner) atLineStart() bool {
	return s.pos == 0 || s.input[s.pos-1] == '\n'
}

// Next returns the next token, advancing the scanner. Returns a TokEnd
// token once the input is exhausted.
func (s *Scanner) Next() Token {
	if len(s.pushedBack) > 0 {
		name := s.pushedBack[len(s.pushedBack)-1]
		s.pushedBack = s.pushedBack[:len(s.pushedBack)-1]
		return Token{Kind: TokCommand, Name: name, Line: s.line}
	}

	if end, capturing := verbatimEndMarker[s.top()]; capturing {
		return s.scanVerbatimBody(end)
	}

	if s.pos >= len(s.input) {
		return Token{Kind: TokEnd, Line: s.line}
	}

	rest := s.input[s.pos:]
	line := s.line

	if s.top() == StateTitle && rest[0] == '\n' {
		// A title runs to the end of its line.
		s.advance(1)
		return Token{Kind: TokNewPara, Line: line}
	}

	if s.atLineStart() && !s.insidePre {
		if m := listItemRe.FindStringSubmatch(rest); m != nil {
			indent := len(m[1])
			isEnum := m[2] != "-" && m[2] != "*"
			s.advance(len(m[0]))
			return Token{Kind: TokListItem, Indent: indent, IsEnumList: isEnum, Line: line}
		}
		if strings.TrimSpace(firstLine(rest)) == "" {
			// Blank line: consume it and report a paragraph break.
			n := len(firstLine(rest))
			if n < len(rest) {
				n++ // the newline itself
			}
			s.advance(n)
			return Token{Kind: TokNewPara, Line: line}
		}
	}

	switch {
	case rest[0] == '\\' || rest[0] == '@':
		if m := escapeSymRe.FindStringSubmatch(rest); m != nil {
			s.advance(len(m[0]))
			return Token{Kind: TokSymbol, Name: symbolNameFor(m[1]), Line: line}
		}
		if m := formulaOpenRe.FindString(rest); m != "" {
			// \f$, \f[ and \f{ all open a formula; the body runs to the
			// matching \f-delimiter in the formula lex state.
			s.advance(len(m))
			return Token{Kind: TokCommand, Name: "formula", Line: line}
		}
		if m := cmdRe.FindStringSubmatch(rest); m != nil {
			s.advance(len(m[0]))
			return Token{Kind: TokCommand, Name: m[1], Line: line}
		}
		s.advance(1)
		return Token{Kind: TokWord, Name: rest[:1], Line: line}
	case rest[0] == '<':
		if tok, n, ok := s.scanHtmlTag(rest); ok {
			s.advance(n)
			tok.Line = line
			return tok
		}
		s.advance(1)
		return Token{Kind: TokWord, Name: "<", Line: line}
	case rest[0] == '$':
		if m := rcsTagRe.FindStringSubmatch(rest); m != nil {
			s.advance(len(m[0]))
			return Token{Kind: TokRcsTag, Name: m[1], SimpleSectName: m[1], SimpleSectText: strings.TrimSpace(m[2]), Line: line}
		}
		s.advance(1)
		return Token{Kind: TokWord, Name: "$", Line: line}
	case rest[0] == '"':
		// A double-quoted run on one line is a single word argument, the
		// quotes stripped (e.g. \xrefitem todo "Todo" "Todo List").
		if j := strings.IndexAny(rest[1:], "\"\n"); j >= 0 && rest[1+j] == '"' {
			s.advance(j + 2)
			return Token{Kind: TokWord, Name: rest[1 : 1+j], Line: line}
		}
		s.advance(1)
		return Token{Kind: TokWord, Name: `"`, Line: line}
	case dashRe.MatchString(rest):
		m := dashRe.FindString(rest)
		s.advance(len(m))
		name := "ndash"
		if m == "---" {
			name = "mdash"
		}
		return Token{Kind: TokSymbol, Name: name, Line: line}
	case urlRe.MatchString(rest):
		m := urlRe.FindString(rest)
		s.advance(len(m))
		return Token{Kind: TokUrl, Name: m, IsEMail: false, Line: line}
	case unicode.IsSpace(rune(rest[0])):
		n := 0
		for n < len(rest) && unicode.IsSpace(rune(rest[n])) && rest[n] != '\n' {
			n++
		}
		if n == 0 {
			n = 1 // a lone newline mid-paragraph: single whitespace token
		}
		chars := s.advance(n)
		return Token{Kind: TokWhiteSpace, Chars: chars, Line: line}
	default:
		n := 0
		for n < len(rest) {
			c := rest[n]
			if c == '\\' || c == '@' || c == '<' || unicode.IsSpace(rune(c)) {
				break
			}
			if n > 0 && dashRe.MatchString(rest[n:]) {
				break
			}
			n++
		}
		if n == 0 {
			n = 1
		}
		word := s.advance(n)
		kind := TokWord
		if linkableWordRe.MatchString(word) {
			kind = TokLinkableWord
		}
		return Token{Kind: kind, Name: word, Line: line}
	}
}

func symbolNameFor(esc string) string {
	switch esc {
	case "\\", "@":
		return "backslash"
	case "<":
		return "lt"
	case ">":
		return "gt"
	case "&":
		return "amp"
	case "$":
		return "dollar"
	case "#":
		return "hash"
	case "%":
		return "percent"
	case "|":
		return "pipe"
	case "::":
		return "coloncolon"
	case `"`:
		return "quot"
	default:
		return esc
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// scanVerbatimBody captures everything up to (not including) the next
// "\endMarker"/"@endMarker" command. If EOF is reached first, the
// captured body is still returned (EndTag=false) so the caller can emit
// LexicalUnterminated and still render the partial body.
func (s *Scanner) scanVerbatimBody(marker string) Token {
	line := s.line
	st := s.top()

	lang := ""
	if st == StateCode {
		// \code{.py}: the brace suffix names the language, it is not part
		// of the captured body.
		rest := s.input[s.pos:]
		if strings.HasPrefix(rest, "{") {
			if j := strings.IndexByte(rest, '}'); j > 0 && !strings.Contains(rest[:j], "\n") {
				lang = rest[1:j]
				s.advance(j + 1)
			}
		}
	}

	needles := []string{"\\" + marker, "@" + marker}
	if st == StateFormula {
		needles = append(needles, `\f$`, `\f]`, `\f}`, "@f$", "@f]", "@f}")
	}

	rest := s.input[s.pos:]
	end, markerLen := -1, 0
	for _, nd := range needles {
		if i := strings.Index(rest, nd); i >= 0 && (end == -1 || i < end) {
			end, markerLen = i, len(nd)
		}
	}
	if end == -1 {
		body := s.advance(len(rest))
		return Token{Kind: TokVerbatimBody, Verb: body, Name: lang, EndTag: false, Line: line}
	}
	body := s.advance(end)
	// Consume the end marker itself so the next Next() call sees what
	// follows it, exactly as the dispatcher expects one token per command.
	s.advance(markerLen)
	return Token{Kind: TokVerbatimBody, Verb: body, Name: lang, EndTag: true, Line: line}
}

// scanHtmlTag recognizes one HTML/XML-doc tag using x/net/html's
// tokenizer, filtered to recognizedHtmlTags. Unrecognized tags are
// reported by returning ok=false so the caller falls back to treating '<'
// as literal text.
func (s *Scanner) scanHtmlTag(rest string) (Token, int, bool) {
	z := html.NewTokenizer(strings.NewReader(rest))
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.EndTagToken && tt != html.SelfClosingTagToken {
		return Token{}, 0, false
	}
	raw := z.Raw()
	name, hasAttr := z.TagName()
	tagName := strings.ToLower(string(name))
	if !recognizedHtmlTags[tagName] {
		return Token{}, 0, false
	}
	var attribs []Attrib
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attribs = append(attribs, Attrib{Key: string(key), Value: string(val)})
	}
	tok := Token{
		Kind:    TokHtmlTag,
		Name:    tagName,
		Attribs: attribs,
		EndTag:  tt == html.EndTagToken,
		Empty:   tt == html.SelfClosingTagToken,
	}
	return tok, len(raw), true
}
