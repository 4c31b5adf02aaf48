package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

type LatexmkOpts struct {
	Xelatex  bool
	Lualatex bool

	Bibtex   bool
	Biber    bool
	NoBibtex bool

	Synctex bool

	Silent  bool
	Quiet   bool
	Verbose bool

	Commands bool
}

func (o *LatexmkOpts) Validate() error {
	if o.Xelatex && o.Lualatex {
		return fmt.Errorf("--xelatex and --lualatex are mutually exclusive")
	}
	if countTrue(o.Bibtex, o.Biber, o.NoBibtex) > 1 {
		return fmt.Errorf("only one of --bibtex, --biber and --nobibtex can be used")
	}
	if countTrue(o.Silent, o.Quiet, o.Verbose) > 1 {
		return fmt.Errorf("only one of --silent, --quiet and --verbose can be used")
	}
	return nil
}

// Args returns the latexmk flags, without the directory and document arguments.
func (o *LatexmkOpts) Args() []string {
	args := []string{"-halt-on-error", "-file-line-error"}

	if o.Xelatex {
		args = append(args, "-xelatex")
	} else if o.Lualatex {
		args = append(args, "-lualatex")
	}

	if o.Bibtex {
		args = append(args, "-bibtex")
	} else if o.Biber {
		args = append(args, "-biber")
	} else if o.NoBibtex {
		args = append(args, "-nobibtex")
	}

	if o.Silent {
		args = append(args, "-silent")
	} else if o.Quiet {
		args = append(args, "-quiet")
	} else if o.Verbose {
		args = append(args, "-verbose")
	}

	if o.Commands {
		args = append(args, "-commands")
	}
	if o.Synctex {
		args = append(args, "-synctex=1")
	}
	return args
}

// Latexmk builds Dir/Doc.tex into TmpDir and delivers the results to OutDir.
type Latexmk struct {
	Program string
	Dir     string
	Doc     string
	TmpDir  string
	OutDir  string
	Opts    *LatexmkOpts
	Keep    []glob.Glob
}

func (l *Latexmk) Command() (*exec.Cmd, error) {
	err := mkdirAll(l.TmpDir)
	if err != nil {
		return nil, err
	}

	args := l.Opts.Args()
	args = append(args,
		"-outdir="+l.TmpDir,
		"-auxdir="+l.TmpDir,
		filepath.Join(l.Dir, l.Doc),
	)
	return exec.Command(l.Program, args...), nil
}

func (l *Latexmk) artifact(ext string) string {
	return l.Doc + ext
}

// Relocate copies the PDF (and the SyncTeX file, when requested) plus any
// kept auxiliary files from TmpDir to OutDir. Only call it after latexmk
// succeeded.
func (l *Latexmk) Relocate() error {
	err := mkdirAll(l.OutDir)
	if err != nil {
		return err
	}

	names := []string{l.artifact(".pdf")}
	if l.Opts.Synctex {
		names = append(names, l.artifact(".synctex.gz"))
	}

	kept, err := l.keptArtifacts()
	if err != nil {
		return err
	}
	names = append(names, kept...)

	for _, name := range names {
		err = copyFile(filepath.Join(l.TmpDir, name), filepath.Join(l.OutDir, name))
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Latexmk) keptArtifacts() ([]string, error) {
	if len(l.Keep) == 0 {
		return nil, nil
	}

	entries, err := os.ReadDir(l.TmpDir)
	if err != nil {
		return nil, &FsError{Op: "read directory", Path: l.TmpDir, Err: err}
	}

	prefix := l.Doc + "."
	kept := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		ext := strings.TrimPrefix(entry.Name(), prefix)
		if ext == "pdf" || ext == "synctex.gz" {
			continue
		}
		for _, g := range l.Keep {
			if g.Match(ext) {
				kept = append(kept, entry.Name())
				break
			}
		}
	}
	return kept, nil
}

func compileKeep(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid --keep pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func countTrue(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
