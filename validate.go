package docparser

import (
	"sort"
	"strings"
)

// argName extracts the bare parameter name from a declaration like
// "int x", "const std::string &name", or a bare "x", by taking the
// trailing identifier and stripping any default-value or array suffix.
func argName(decl string) string {
	decl = strings.TrimSpace(decl)
	if i := strings.IndexByte(decl, '='); i >= 0 {
		decl = strings.TrimSpace(decl[:i])
	}
	if i := strings.IndexByte(decl, '['); i >= 0 {
		decl = strings.TrimSpace(decl[:i])
	}
	i := len(decl)
	for i > 0 {
		c := decl[i-1]
		if c == '*' || c == '&' || c == ' ' || c == '\t' {
			break
		}
		i--
	}
	return decl[i:]
}

func sameParamName(a, b string, lang Lang) bool {
	if lang == LangFortran {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ValidateParams cross-checks the \param names collected into
// ctx.ParamsFound against owner.Args. Run once at the close of the
// member's documentation block, after every \param/\copydoc/\inheritdoc
// contribution has landed in ctx. The grouped "parameters not
// documented" listing is gated on cfg.WarnIfDocError; the per-argument
// "not found in the argument list" diagnostic is unconditional, since it
// flags a likely typo rather than an incomplete doc comment.
func ValidateParams(ctx *ParserContext, owner *Member, cfg *Configuration, sink DiagSink, file string, line int) {
	if owner == nil || !ctx.HasParamCommand {
		return
	}
	if cfg == nil {
		cfg = NewConfiguration()
	}
	if len(owner.Args) == 0 {
		return
	}

	sig := owner.Name + "(" + strings.Join(owner.Args, ", ") + ")"

	argNames := make([]string, len(owner.Args))
	for i, a := range owner.Args {
		argNames[i] = argName(a)
	}

	found := make([]string, 0, len(ctx.ParamsFound))
	for name := range ctx.ParamsFound {
		found = append(found, name)
	}
	sort.Strings(found)
	for _, name := range found {
		matched := false
		for _, an := range argNames {
			if sameParamName(name, an, ctx.Lang) {
				matched = true
				break
			}
		}
		if !matched {
			sink.WarnDocError(file, line, ErrUnresolvedRef,
				"argument '%s' of command @param is not found in the argument list of %s", name, sig)
		}
	}

	var missing []string
	for _, an := range argNames {
		if ctx.Lang == LangPython && an == "self" {
			continue
		}
		documented := false
		for name := range ctx.ParamsFound {
			if sameParamName(name, an, ctx.Lang) {
				documented = true
				break
			}
		}
		if !documented {
			missing = append(missing, an)
		}
	}
	if len(missing) > 0 && cfg.WarnIfDocError {
		var b strings.Builder
		b.WriteString("The following parameters of ")
		b.WriteString(owner.Name)
		b.WriteString(" are not documented:\n")
		for _, m := range missing {
			b.WriteString("  parameter '")
			b.WriteString(m)
			b.WriteString("'\n")
		}
		sink.WarnDocError(file, line, ErrArgumentExpected, "%s", strings.TrimRight(b.String(), "\n"))
	}
}

// ValidateReturn checks return documentation: every non-void,
// non-constructor/destructor member should have a \return (or \returns)
// entry; skipped entirely for ctors/dtors and for an empty or void return
// type. Gated on cfg.WarnNoParamDoc.
func ValidateReturn(ctx *ParserContext, owner *Member, cfg *Configuration, sink DiagSink, file string, line int) {
	if owner == nil || ctx.HasReturnCommand {
		return
	}
	if cfg == nil {
		cfg = NewConfiguration()
	}
	if !cfg.WarnNoParamDoc {
		return
	}
	if owner.IsCtorDtor {
		return
	}
	rt := strings.TrimSpace(owner.ReturnType)
	if rt == "" || rt == "void" {
		return
	}
	sink.WarnDocError(file, line, ErrArgumentExpected,
		"member %s returns a value but has no documented @return", owner.Name)
}
