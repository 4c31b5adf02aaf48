package main

import (
	"github.com/urfave/cli/v2"
)

const (
	categoryOutput    = "Output"
	categoryDiff      = "Diff"
	categoryLatexmk   = "latexmk"
	categoryVC        = "latexdiff-vc"
	categoryLatexdiff = "latexdiff"
)

func appFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: defaultConfigPath,
			Usage: "Config file with defaults for the flags below",
		},
		&cli.StringFlag{
			Name:     "tmpdir",
			Category: categoryOutput,
			Usage:    "Directory for temporary files (.aux, .log, ...) [default: <doc dir>/.temp]",
		},
		&cli.StringFlag{
			Name:     "outdir",
			Aliases:  []string{"o"},
			Category: categoryOutput,
			Usage:    "Output directory for the final PDF [default: the document directory]",
		},
		&cli.StringSliceFlag{
			Name:     "keep",
			Category: categoryOutput,
			Usage:    "Also copy <doc>.<ext> to the output directory when <ext> matches this glob (e.g. '{log,bbl}')",
		},
		&cli.StringFlag{
			Name:  "latexmk",
			Usage: "Path to the latexmk executable",
		},
		&cli.StringFlag{
			Name:  "latexdiff-vc",
			Usage: "Path to the latexdiff-vc executable",
		},
		&cli.BoolFlag{
			Name:   "diff-only",
			Hidden: true,
		},
		&cli.BoolFlag{
			Name:     "async-diff",
			Category: categoryDiff,
			Usage:    "Build the diff in a detached process instead of waiting for it",
		},
		&cli.StringFlag{
			Name:     "diff-name",
			Aliases:  []string{"d"},
			Category: categoryDiff,
			Usage:    "Name of the subdirectory for diff output [default: diff]",
		},
		&cli.StringFlag{
			Name:     "diff-postfix",
			Category: categoryDiff,
			Usage:    "Suffix added to the diff file name [default: -<diff-name>]",
		},
	}

	for _, name := range []string{"xelatex", "lualatex", "bibtex", "biber", "nobibtex", "synctex", "silent", "quiet", "verbose", "commands"} {
		flags = append(flags, &cli.BoolFlag{Name: name, Category: categoryLatexmk, Usage: latexmkUsage[name]})
	}

	for _, name := range []string{"git", "svn", "hg", "cvs", "rcs", "flatten", "flatten-keep-intermediate"} {
		flags = append(flags, &cli.BoolFlag{Name: name, Category: categoryVC, Usage: vcUsage[name]})
	}
	flags = append(flags, &cli.StringSliceFlag{
		Name:     "revision",
		Aliases:  []string{"r"},
		Category: categoryVC,
		Usage:    "Revision to compare against, repeat for two revisions [default: the last commit]",
	})

	for _, f := range latexdiffValueFlags {
		flags = append(flags, &cli.StringFlag{Name: f.name, Aliases: f.aliases, Category: categoryLatexdiff, Usage: f.usage})
	}
	for _, f := range latexdiffBoolFlags {
		flags = append(flags, &cli.BoolFlag{Name: f.name, Category: categoryLatexdiff, Usage: f.usage})
	}
	return flags
}

var latexmkUsage = map[string]string{
	"xelatex":  "Use XeLaTeX as the engine",
	"lualatex": "Use LuaLaTeX as the engine",
	"bibtex":   "Use BibTeX for the bibliography",
	"biber":    "Use Biber for the bibliography",
	"nobibtex": "Disable bibliography processing",
	"synctex":  "Generate SyncTeX files",
	"silent":   "Suppress all output except errors",
	"quiet":    "Reduce output verbosity",
	"verbose":  "Verbose output, also enables latexdiffmk's own log",
	"commands": "Show the commands latexmk runs",
}

var vcUsage = map[string]string{
	"git":                       "Use Git",
	"svn":                       "Use Subversion",
	"hg":                        "Use Mercurial",
	"cvs":                       "Use CVS",
	"rcs":                       "Use RCS",
	"flatten":                   "Expand \\input and \\include before diffing",
	"flatten-keep-intermediate": "Like --flatten, keeping the intermediate files",
}

type latexdiffFlag struct {
	name    string
	aliases []string
	usage   string
}

var latexdiffValueFlags = []latexdiffFlag{
	{"type", []string{"t"}, "Markup style for added and deleted text"},
	{"subtype", []string{"s"}, "Style for block start and end markers"},
	{"floattype", []string{"f"}, "Markup style inside floats"},
	{"encoding", []string{"e"}, "Input encoding [default: utf8]"},
	{"preamble", []string{"p"}, "Custom preamble file"},
	{"packages", nil, "Comma-separated list of packages to assume"},
	{"exclude-safecmd", []string{"A"}, "Remove commands from the safe list (regex)"},
	{"append-safecmd", []string{"a"}, "Add commands to the safe list (regex)"},
	{"replace-safecmd", nil, "Replace the safe list (regex)"},
	{"exclude-textcmd", []string{"X"}, "Remove commands from the text list (regex)"},
	{"append-textcmd", []string{"x"}, "Add commands to the text list (regex)"},
	{"replace-textcmd", nil, "Replace the text list (regex)"},
	{"append-context1cmd", nil, "Add commands to the context1 list (regex)"},
	{"replace-context1cmd", nil, "Replace the context1 list (regex)"},
	{"append-context2cmd", nil, "Add commands to the context2 list (regex)"},
	{"replace-context2cmd", nil, "Replace the context2 list (regex)"},
	{"exclude-mboxsafecmd", nil, "Remove commands from the mbox-safe list (regex)"},
	{"append-mboxsafecmd", nil, "Add commands to the mbox-safe list (regex)"},
	{"latexdiff-config", []string{"c"}, "latexdiff configuration variables (var=val,...)"},
	{"add-to-config", nil, "Append patterns to regex variables (var=pat;...)"},
	{"math-markup", nil, "Math markup granularity: off, whole, coarse, fine"},
	{"graphics-markup", nil, "Graphics markup: off, new-only, both"},
	{"driver", nil, "Driver type for the output"},
	{"label", []string{"L"}, "Label identifying the diff"},
}

var latexdiffBoolFlags = []latexdiffFlag{
	{"show-preamble", nil, "Print the preamble in use"},
	{"show-safecmd", nil, "Print the safe command list"},
	{"show-textcmd", nil, "Print the text command list"},
	{"show-config", nil, "Print the configuration variables"},
	{"show-all", nil, "All of the --show-* options"},
	{"disable-citation-markup", nil, "Do not mark up citations"},
	{"disable-auto-mbox", nil, "Do not protect content with \\mbox"},
	{"enable-citation-markup", nil, "Mark up citations"},
	{"enforce-auto-mbox", nil, "Always protect content with \\mbox"},
	{"ignore-warnings", nil, "Suppress warnings"},
	{"no-label", nil, "Omit the label line"},
	{"visible-label", nil, "Make the label visible in the output"},
}

// optionsFromContext merges the command line over config.
func optionsFromContext(ctx *cli.Context, config *Config) *Options {
	str := func(name, fallback string) string {
		if ctx.IsSet(name) {
			return ctx.String(name)
		}
		return fallback
	}
	boolean := func(name string, fallback bool) bool {
		if ctx.IsSet(name) {
			return ctx.Bool(name)
		}
		return fallback
	}

	opts := &Options{
		Doc:         ctx.Args().First(),
		TmpDir:      str("tmpdir", config.TmpDir),
		OutDir:      str("outdir", config.OutDir),
		Latexmk:     str("latexmk", config.Latexmk),
		LatexdiffVc: str("latexdiff-vc", config.LatexdiffVc),
		DiffOnly:    ctx.Bool("diff-only"),
		AsyncDiff:   boolean("async-diff", config.AsyncDiff),
		DiffName:    str("diff-name", config.DiffName),
		DiffPostfix: str("diff-postfix", config.DiffPostfix),
		Keep:        config.Keep,
	}
	if ctx.IsSet("keep") {
		opts.Keep = ctx.StringSlice("keep")
	}

	mk := &opts.LatexmkOpts
	mk.Xelatex = ctx.Bool("xelatex")
	mk.Lualatex = ctx.Bool("lualatex")
	if !mk.Xelatex && !mk.Lualatex {
		mk.Xelatex = config.Engine == "xelatex"
		mk.Lualatex = config.Engine == "lualatex"
	}
	mk.Bibtex = ctx.Bool("bibtex")
	mk.Biber = ctx.Bool("biber")
	mk.NoBibtex = ctx.Bool("nobibtex")
	if !mk.Bibtex && !mk.Biber && !mk.NoBibtex {
		mk.Bibtex = config.Bib == "bibtex"
		mk.Biber = config.Bib == "biber"
		mk.NoBibtex = config.Bib == "nobibtex"
	}
	mk.Synctex = boolean("synctex", config.Synctex)
	mk.Silent = ctx.Bool("silent")
	mk.Quiet = ctx.Bool("quiet")
	mk.Verbose = ctx.Bool("verbose")
	mk.Commands = ctx.Bool("commands")

	vc := &opts.LatexdiffVcOpts
	vc.Git = ctx.Bool("git")
	vc.Svn = ctx.Bool("svn")
	vc.Hg = ctx.Bool("hg")
	vc.Cvs = ctx.Bool("cvs")
	vc.Rcs = ctx.Bool("rcs")
	if countTrue(vc.Git, vc.Svn, vc.Hg, vc.Cvs, vc.Rcs) == 0 {
		vc.Git = config.VCS == "git"
		vc.Svn = config.VCS == "svn"
		vc.Hg = config.VCS == "hg"
		vc.Cvs = config.VCS == "cvs"
		vc.Rcs = config.VCS == "rcs"
	}
	vc.Revisions = ctx.StringSlice("revision")
	vc.Flatten = ctx.Bool("flatten")
	vc.FlattenKeepIntermediate = ctx.Bool("flatten-keep-intermediate")

	opts.LatexdiffOpts = LatexdiffOpts{
		Type:                  ctx.String("type"),
		SubType:               ctx.String("subtype"),
		FloatType:             ctx.String("floattype"),
		Encoding:              ctx.String("encoding"),
		Preamble:              ctx.String("preamble"),
		Packages:              ctx.String("packages"),
		ExcludeSafeCmd:        ctx.String("exclude-safecmd"),
		AppendSafeCmd:         ctx.String("append-safecmd"),
		ReplaceSafeCmd:        ctx.String("replace-safecmd"),
		ExcludeTextCmd:        ctx.String("exclude-textcmd"),
		AppendTextCmd:         ctx.String("append-textcmd"),
		ReplaceTextCmd:        ctx.String("replace-textcmd"),
		AppendContext1Cmd:     ctx.String("append-context1cmd"),
		ReplaceContext1Cmd:    ctx.String("replace-context1cmd"),
		AppendContext2Cmd:     ctx.String("append-context2cmd"),
		ReplaceContext2Cmd:    ctx.String("replace-context2cmd"),
		ExcludeMboxSafeCmd:    ctx.String("exclude-mboxsafecmd"),
		AppendMboxSafeCmd:     ctx.String("append-mboxsafecmd"),
		Config:                ctx.String("latexdiff-config"),
		AddToConfig:           ctx.String("add-to-config"),
		ShowPreamble:          ctx.Bool("show-preamble"),
		ShowSafeCmd:           ctx.Bool("show-safecmd"),
		ShowTextCmd:           ctx.Bool("show-textcmd"),
		ShowConfig:            ctx.Bool("show-config"),
		ShowAll:               ctx.Bool("show-all"),
		MathMarkup:            ctx.String("math-markup"),
		GraphicsMarkup:        ctx.String("graphics-markup"),
		DisableCitationMarkup: ctx.Bool("disable-citation-markup"),
		DisableAutoMbox:       ctx.Bool("disable-auto-mbox"),
		EnableCitationMarkup:  ctx.Bool("enable-citation-markup"),
		EnforceAutoMbox:       ctx.Bool("enforce-auto-mbox"),
		Driver:                ctx.String("driver"),
		IgnoreWarnings:        ctx.Bool("ignore-warnings"),
		Label:                 ctx.String("label"),
		NoLabel:               ctx.Bool("no-label"),
		VisibleLabel:          ctx.Bool("visible-label"),
	}
	return opts
}
