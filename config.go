package docparser

// Configuration is the read-only settings surface: booleans/strings/lists
// the parser consults but never mutates.
type Configuration struct {
	AutoLinkSupport  bool
	WarnIfDocError   bool
	WarnNoParamDoc   bool
	GenerateHTML     bool
	GenerateLatex    bool
	GenerateDocbook  bool
	GenerateRTF      bool
	UsePdfLatex      bool
	FilterSourceFiles bool

	GenerateTodoList       bool
	GenerateTestList       bool
	GenerateBugList        bool
	GenerateDeprecatedList bool

	HtmlOutput      string
	LatexOutput     string
	DocbookOutput   string
	RtfOutput       string
	PlantumlJarPath string

	ExamplePath  []string
	CiteBibFiles []string

	// ReadFile backs \include/\snippet and the include operators. It
	// returns the file split into lines. If unset, include commands
	// report ErrArgumentExpected through the sink; no filesystem access
	// is assumed.
	ReadFile func(filename string) ([]string, error)

	Sink DiagSink
}

// NewConfiguration returns a Configuration with sane defaults.
func NewConfiguration() *Configuration {
	return &Configuration{
		AutoLinkSupport: true,
		WarnIfDocError:  true,
		WarnNoParamDoc:  true,
		GenerateHTML:    true,
		HtmlOutput:      "html",
		LatexOutput:     "latex",
		DocbookOutput:   "docbook",
		RtfOutput:       "rtf",
		Sink:            NewLogSink(nil),
	}
}

// Silent discards all diagnostics.
func (c *Configuration) Silent() *Configuration {
	c.Sink = SilentSink()
	return c
}
