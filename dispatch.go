package docparser

// commandID is the dispatcher's internal id for a recognized command
// name. Both `\cmd` and `@cmd` sigils map to the same id — the Scanner
// strips the sigil before dispatch ever sees a command name.
type commandID int

const (
	cmdUnknown commandID = iota

	// inline style
	cmdBold
	cmdEmph
	cmdCode

	// "only" blocks
	cmdHtmlOnly
	cmdManOnly
	cmdRtfOnly
	cmdLatexOnly
	cmdXmlOnly
	cmdDocbookOnly

	// verbatim-ish
	cmdVerbatim
	cmdCodeBlock
	cmdDot
	cmdMsc
	cmdStartUml

	// anchors / refs
	cmdAnchor
	cmdRef
	cmdSubpage
	cmdInternalRef
	cmdCite
	cmdLink
	cmdJavalink
	cmdEndlink

	// sections
	cmdSection
	cmdSubsection
	cmdSubsubsection
	cmdParagraphCmd

	// simple sections
	cmdSa
	cmdReturn
	cmdAuthor
	cmdAuthors
	cmdVersion
	cmdSince
	cmdDate
	cmdNote
	cmdWarning
	cmdPre
	cmdPost
	cmdCopyright
	cmdInvariant
	cmdRemark
	cmdAttention
	cmdPar

	// param sections
	cmdParam
	cmdTParam
	cmdRetval
	cmdException

	// xref lists
	cmdXrefitem
	cmdSecreflist
	cmdSecrefitem
	cmdEndsecreflist

	// includes
	cmdInclude
	cmdIncludelineno
	cmdDontinclude
	cmdHtmlinclude
	cmdLatexinclude
	cmdVerbinclude
	cmdSnippet
	cmdLine
	cmdSkip
	cmdSkipline
	cmdUntil

	// media
	cmdImage
	cmdDotfile
	cmdMscfile
	cmdDiafile
	cmdFormula

	// misc
	cmdInternal
	cmdEndinternal
	cmdParblock
	cmdEndparblock
	cmdAddindex
	cmdLi
	cmdSetscope
	cmdInheritdoc
)

// commandTable is the fixed string→id command table. Escapes/text
// substitutions (\\, \@, \<, ...) are handled earlier, by the Scanner,
// which already turns them into TokSymbol — they never reach this table.
var commandTable = map[string]commandID{
	"b": cmdBold, "e": cmdEmph, "em": cmdEmph, "c": cmdCode,

	"htmlonly": cmdHtmlOnly, "manonly": cmdManOnly, "rtfonly": cmdRtfOnly,
	"latexonly": cmdLatexOnly, "xmlonly": cmdXmlOnly, "docbookonly": cmdDocbookOnly,

	"verbatim": cmdVerbatim, "code": cmdCodeBlock, "dot": cmdDot,
	"msc": cmdMsc, "startuml": cmdStartUml,

	"anchor": cmdAnchor, "ref": cmdRef, "subpage": cmdSubpage,
	"internalref": cmdInternalRef, "cite": cmdCite,
	"link": cmdLink, "javalink": cmdJavalink, "endlink": cmdEndlink,

	"section": cmdSection, "subsection": cmdSubsection,
	"subsubsection": cmdSubsubsection, "paragraph": cmdParagraphCmd,

	"sa": cmdSa, "see": cmdSa, "return": cmdReturn, "returns": cmdReturn,
	"author": cmdAuthor, "authors": cmdAuthors, "version": cmdVersion,
	"since": cmdSince, "date": cmdDate, "note": cmdNote, "warning": cmdWarning,
	"pre": cmdPre, "post": cmdPost, "copyright": cmdCopyright,
	"invariant": cmdInvariant, "remark": cmdRemark, "attention": cmdAttention,
	"par": cmdPar,

	"param": cmdParam, "tparam": cmdTParam, "retval": cmdRetval,
	"exception": cmdException,

	"xrefitem": cmdXrefitem, "secreflist": cmdSecreflist,
	"secrefitem": cmdSecrefitem, "endsecreflist": cmdEndsecreflist,

	"include": cmdInclude, "includelineno": cmdIncludelineno,
	"dontinclude": cmdDontinclude, "htmlinclude": cmdHtmlinclude,
	"latexinclude": cmdLatexinclude, "verbinclude": cmdVerbinclude,
	"snippet": cmdSnippet, "line": cmdLine, "skip": cmdSkip,
	"skipline": cmdSkipline, "until": cmdUntil,

	"image": cmdImage, "dotfile": cmdDotfile, "mscfile": cmdMscfile,
	"diafile": cmdDiafile, "formula": cmdFormula,

	"internal": cmdInternal, "endinternal": cmdEndinternal,
	"parblock": cmdParblock, "endparblock": cmdEndparblock,
	"addindex": cmdAddindex, "li": cmdLi, "setscope": cmdSetscope,
	"inheritdoc": cmdInheritdoc,
}

// simpleSectKindFor maps a simple-section command id to its SimpleSectKind
// payload.
var simpleSectKindFor = map[commandID]SimpleSectKind{
	cmdSa: SSSee, cmdReturn: SSReturn, cmdAuthor: SSAuthor,
	cmdAuthors: SSAuthors, cmdVersion: SSVersion, cmdSince: SSSince,
	cmdDate: SSDate, cmdNote: SSNote, cmdWarning: SSWarning, cmdPre: SSPre,
	cmdPost: SSPost, cmdCopyright: SSCopyright, cmdInvariant: SSInvariant,
	cmdRemark: SSRemark, cmdAttention: SSAttention, cmdPar: SSPar,
}

var verbatimOnlyState = map[commandID]LexState{
	cmdHtmlOnly: StateHtmlOnly, cmdManOnly: StateManOnly,
	cmdRtfOnly: StateRtfOnly, cmdLatexOnly: StateLatexOnly,
	cmdXmlOnly: StateXmlOnly, cmdDocbookOnly: StateDocbookOnly,
	cmdVerbatim: StateVerbatim, cmdCodeBlock: StateCode,
	cmdDot: StateDot, cmdMsc: StateMsc, cmdStartUml: StatePlantUML,
}

var verbatimOnlyType = map[commandID]VerbatimType{
	cmdHtmlOnly: VerbHtmlOnly, cmdManOnly: VerbManOnly,
	cmdRtfOnly: VerbRtfOnly, cmdLatexOnly: VerbLatexOnly,
	cmdXmlOnly: VerbXmlOnly, cmdDocbookOnly: VerbDocbookOnly,
	cmdVerbatim: VerbVerbatim, cmdCodeBlock: VerbCode,
	cmdDot: VerbDot, cmdMsc: VerbMsc, cmdStartUml: VerbPlantUML,
}

// verbatimSectionName names each body-capturing section in diagnostics
// ("code section ended without end marker", ...).
var verbatimSectionName = map[commandID]string{
	cmdHtmlOnly: "htmlonly", cmdManOnly: "manonly", cmdRtfOnly: "rtfonly",
	cmdLatexOnly: "latexonly", cmdXmlOnly: "xmlonly", cmdDocbookOnly: "docbookonly",
	cmdVerbatim: "verbatim", cmdCodeBlock: "code",
	cmdDot: "dot", cmdMsc: "msc", cmdStartUml: "uml",
}

// sectionLevelFor maps a section command id to its nesting level.
var sectionLevelFor = map[commandID]int{
	cmdSection: 1, cmdSubsection: 2, cmdSubsubsection: 3, cmdParagraphCmd: 4,
}

// lookupCommand resolves name (already stripped of its \ or @ sigil by
// the Scanner) to a commandID, or cmdUnknown if none matches; the caller
// then emits a Word node with the raw command text and continues.
func lookupCommand(name string) commandID {
	if id, ok := commandTable[name]; ok {
		return id
	}
	return cmdUnknown
}
