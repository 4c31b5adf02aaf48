package main

// LatexdiffOpts are forwarded by latexdiff-vc to latexdiff.
type LatexdiffOpts struct {
	Type      string
	SubType   string
	FloatType string
	Encoding  string
	Preamble  string
	Packages  string

	ExcludeSafeCmd     string
	AppendSafeCmd      string
	ReplaceSafeCmd     string
	ExcludeTextCmd     string
	AppendTextCmd      string
	ReplaceTextCmd     string
	AppendContext1Cmd  string
	ReplaceContext1Cmd string
	AppendContext2Cmd  string
	ReplaceContext2Cmd string
	ExcludeMboxSafeCmd string
	AppendMboxSafeCmd  string

	Config      string
	AddToConfig string

	ShowPreamble bool
	ShowSafeCmd  bool
	ShowTextCmd  bool
	ShowConfig   bool
	ShowAll      bool

	MathMarkup     string
	GraphicsMarkup string

	DisableCitationMarkup bool
	DisableAutoMbox       bool
	EnableCitationMarkup  bool
	EnforceAutoMbox       bool

	Driver         string
	IgnoreWarnings bool

	Label        string
	NoLabel      bool
	VisibleLabel bool
}

func (o *LatexdiffOpts) Args(verbose bool) []string {
	args := []string{}
	value := func(flag, v string) {
		if v != "" {
			args = append(args, "--"+flag+"="+v)
		}
	}
	toggle := func(flag string, on bool) {
		if on {
			args = append(args, "--"+flag)
		}
	}

	value("type", o.Type)
	value("subtype", o.SubType)
	value("floattype", o.FloatType)
	if o.Encoding != "" {
		value("encoding", o.Encoding)
	} else {
		value("encoding", "utf8")
	}

	value("preamble", o.Preamble)
	value("packages", o.Packages)
	toggle("show-preamble", o.ShowPreamble)

	value("exclude-safecmd", o.ExcludeSafeCmd)
	value("append-safecmd", o.AppendSafeCmd)
	value("replace-safecmd", o.ReplaceSafeCmd)
	value("exclude-textcmd", o.ExcludeTextCmd)
	value("append-textcmd", o.AppendTextCmd)
	value("replace-textcmd", o.ReplaceTextCmd)
	value("append-context1cmd", o.AppendContext1Cmd)
	value("replace-context1cmd", o.ReplaceContext1Cmd)
	value("append-context2cmd", o.AppendContext2Cmd)
	value("replace-context2cmd", o.ReplaceContext2Cmd)
	value("exclude-mboxsafecmd", o.ExcludeMboxSafeCmd)
	value("append-mboxsafecmd", o.AppendMboxSafeCmd)

	value("config", o.Config)
	value("add-to-config", o.AddToConfig)

	toggle("show-safecmd", o.ShowSafeCmd)
	toggle("show-textcmd", o.ShowTextCmd)
	toggle("show-config", o.ShowConfig)
	toggle("show-all", o.ShowAll)

	value("math-markup", o.MathMarkup)
	value("graphics-markup", o.GraphicsMarkup)
	toggle("disable-citation-markup", o.DisableCitationMarkup)
	toggle("disable-auto-mbox", o.DisableAutoMbox)
	toggle("enable-citation-markup", o.EnableCitationMarkup)
	toggle("enforce-auto-mbox", o.EnforceAutoMbox)

	toggle("verbose", verbose)
	value("driver", o.Driver)
	toggle("ignore-warnings", o.IgnoreWarnings)

	value("label", o.Label)
	toggle("no-label", o.NoLabel)
	toggle("visible-label", o.VisibleLabel)

	return args
}
