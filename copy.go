package docparser

import (
	"fmt"
	"regexp"
	"strings"
)

// copyCmdRe finds \copybrief, \copydetails, \copydoc and their @
// variants. The command name is captured in group 1.
var copyCmdRe = regexp.MustCompile(`[\\@](copybrief|copydetails|copydoc)\b`)

// CopyStack tracks definitions currently being expanded by the preprocessor
// so a repeat target is detected as a cycle: the same definition never
// appears twice at once.
type CopyStack struct {
	names []string
}

func (c *CopyStack) contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}
func (c *CopyStack) push(name string) { c.names = append(c.names, name) }
func (c *CopyStack) pop()             { c.names = c.names[:len(c.names)-1] }

// PreprocessCopyDoc scans input linearly for \copybrief/\copydetails/
// \copydoc and splices in the resolved target's documentation before
// tokenization. file/line are used only for diagnostics; line
// tracking is approximate (count of newlines consumed so far), matching
// diagnostics attributed to the call site without needing a full source
// map.
func PreprocessCopyDoc(input string, graph SymbolGraph, stack *CopyStack, sink DiagSink, file string, baseLine int) string {
	var out strings.Builder
	pos := 0
	for pos < len(input) {
		rest := input[pos:]
		loc := copyCmdRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			break
		}
		matchStart, matchEnd := loc[0], loc[1]
		out.WriteString(rest[:matchStart])

		if matchStart > 0 && rest[matchStart-1] == '\\' {
			// Escaped sigil: emit the command text literally and continue
			// scanning just past it.
			out.WriteString(rest[matchStart:matchEnd])
			pos += matchEnd
			continue
		}

		cmdName := rest[loc[2]:loc[3]]
		afterCmd := rest[matchEnd:]
		target, consumed := extractCopyTarget(afterCmd)
		lineAtMatch := baseLine + strings.Count(input[:pos+matchStart], "\n")

		if target == "" {
			out.WriteString(rest[matchStart:matchEnd])
			pos += matchEnd
			continue
		}

		if stack.contains(target) {
			sink.WarnDocError(file, lineAtMatch, ErrCopyCycle, "Found recursive @copy%s or @copydoc relation for argument '%s'.", copyVerbSuffix(cmdName), target)
			pos += matchEnd + consumed
			continue
		}

		detailed, brief, def := graph.FindDocs(target)
		var text string
		switch cmdName {
		case "copybrief":
			text = brief
		case "copydetails":
			text = detailed
		default: // copydoc
			text = strings.TrimSpace(brief + "\n\n" + detailed)
		}
		if def == nil {
			sink.WarnDocError(file, lineAtMatch, ErrUnresolvedRef, "%s target '%s' could not be resolved", cmdName, target)
			pos += matchEnd + consumed
			continue
		}

		stack.push(target)
		expanded := PreprocessCopyDoc(text, graph, stack, sink, file, lineAtMatch)
		stack.pop()
		out.WriteString(expanded)
		pos += matchEnd + consumed
	}
	return out.String()
}

func copyVerbSuffix(cmd string) string {
	switch cmd {
	case "copybrief":
		return "brief"
	case "copydetails":
		return "details"
	default:
		return "doc"
	}
}

// extractCopyTarget reads the target identifier following a \copydoc-family
// command, respecting parenthesis balance and single/double-quoted
// regions, absorbing trailing "const"/"volatile" qualifiers. It
// returns the identifier and the number of bytes consumed from s.
func extractCopyTarget(s string) (string, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	depth := 0
	var quote byte
	for i < len(s) {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			i++
			continue
		case '(':
			depth++
			i++
			continue
		case ')':
			if depth == 0 {
				goto done
			}
			depth--
			i++
			continue
		}
		if depth == 0 && (c == ' ' || c == '\t' || c == '\n') {
			goto done
		}
		i++
	}
done:
	target := s[start:i]
	// Trailing "const"/"volatile" qualifiers belong to the identifier,
	// not the surrounding text.
	rest := s[i:]
	for _, qual := range []string{" const", " volatile"} {
		if strings.HasPrefix(rest, qual) {
			i += len(qual)
			target += qual
			rest = s[i:]
		}
	}
	return strings.TrimSpace(target), i
}

// InheritDoc implements \inheritdoc: unlike \copydoc it is handled
// by the command dispatcher, not the linear preprocessor. If the
// owning member reimplements another, the reimplemented member's brief and
// detailed docs are parsed into the current paragraph under a pushed
// context, so diagnostics from that nested parse are attributed
// correctly.
func InheritDoc(graph SymbolGraph, owner *Member) (string, bool) {
	if owner == nil || owner.Reimplements == "" {
		return "", false
	}
	_, _, def := graph.FindDocs(owner.Reimplements)
	if def == nil {
		return "", false
	}
	return fmt.Sprintf("%s\n\n%s", def.Brief, def.Detailed), true
}
