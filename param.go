package main

import (
	"path/filepath"

	"github.com/gobwas/glob"
)

// Options is the parsed command line, after the config file was merged in.
type Options struct {
	Doc string

	TmpDir string
	OutDir string

	Latexmk     string
	LatexdiffVc string

	DiffOnly  bool
	AsyncDiff bool

	DiffName    string
	DiffPostfix string

	Keep []string

	LatexmkOpts     LatexmkOpts
	LatexdiffOpts   LatexdiffOpts
	LatexdiffVcOpts LatexdiffVcOpts
}

// Param is the resolved configuration of a run. All paths are absolute.
type Param struct {
	Dir string // directory of the document
	Doc string // file name of the document, without extension

	TmpDir string // latexmk -outdir/-auxdir
	OutDir string // where the final PDF is delivered

	DiffDirName string
	DiffDoc     string // Doc + postfix

	AsyncDiff bool
	DiffOnly  bool

	Latexmk     string
	LatexdiffVc string

	Keep []glob.Glob

	LatexmkOpts     LatexmkOpts
	LatexdiffOpts   LatexdiffOpts
	LatexdiffVcOpts LatexdiffVcOpts
}

func NewParam(opts *Options, host Host) (*Param, error) {
	err := opts.LatexmkOpts.Validate()
	if err != nil {
		return nil, err
	}
	err = opts.LatexdiffVcOpts.Validate()
	if err != nil {
		return nil, err
	}

	// Doc is a path stem, "paper/main" for "paper/main.tex", so it usually
	// does not exist on disk and cannot be canonicalized.
	doc := opts.Doc
	if !filepath.IsAbs(doc) {
		wd, err := host.Getwd()
		if err != nil {
			return nil, err
		}
		doc = filepath.Join(wd, doc)
	}
	dir := filepath.Dir(doc)
	docName := filepath.Base(doc)

	diffDirName := opts.DiffName
	if diffDirName == "" {
		diffDirName = "diff"
	}
	diffPostfix := opts.DiffPostfix
	if diffPostfix == "" {
		diffPostfix = "-" + diffDirName
	}

	tmpDir := filepath.Join(dir, ".temp")
	if opts.TmpDir != "" {
		tmpDir, err = ensureDir(opts.TmpDir)
		if err != nil {
			return nil, err
		}
	}
	outDir := dir
	if opts.OutDir != "" {
		outDir, err = ensureDir(opts.OutDir)
		if err != nil {
			return nil, err
		}
	}

	keep, err := compileKeep(opts.Keep)
	if err != nil {
		return nil, err
	}

	latexmk := opts.Latexmk
	if latexmk == "" {
		latexmk = "latexmk"
	}
	latexdiffVc := opts.LatexdiffVc
	if latexdiffVc == "" {
		latexdiffVc = "latexdiff-vc"
	}

	return &Param{
		Dir:             dir,
		Doc:             docName,
		TmpDir:          tmpDir,
		OutDir:          outDir,
		DiffDirName:     diffDirName,
		DiffDoc:         docName + diffPostfix,
		AsyncDiff:       opts.AsyncDiff,
		DiffOnly:        opts.DiffOnly,
		Latexmk:         latexmk,
		LatexdiffVc:     latexdiffVc,
		Keep:            keep,
		LatexmkOpts:     opts.LatexmkOpts,
		LatexdiffOpts:   opts.LatexdiffOpts,
		LatexdiffVcOpts: opts.LatexdiffVcOpts,
	}, nil
}

func ensureDir(path string) (string, error) {
	err := mkdirAll(path)
	if err != nil {
		return "", err
	}
	return canonicalize(path)
}

func (p *Param) DiffOutDir() string {
	return filepath.Join(p.Dir, p.DiffDirName)
}

// PrimaryLatexmk builds the document itself.
func (p *Param) PrimaryLatexmk() *Latexmk {
	return &Latexmk{
		Program: p.Latexmk,
		Dir:     p.Dir,
		Doc:     p.Doc,
		TmpDir:  p.TmpDir,
		OutDir:  p.OutDir,
		Opts:    &p.LatexmkOpts,
		Keep:    p.Keep,
	}
}

// DiffLatexmk builds the relocated diff source, which lives in TmpDir.
func (p *Param) DiffLatexmk() *Latexmk {
	return &Latexmk{
		Program: p.Latexmk,
		Dir:     p.TmpDir,
		Doc:     p.DiffDoc,
		TmpDir:  p.TmpDir,
		OutDir:  p.DiffOutDir(),
		Opts:    &p.LatexmkOpts,
		Keep:    p.Keep,
	}
}

func (p *Param) LatexdiffVcRunner() *LatexdiffVc {
	return &LatexdiffVc{
		Program:       p.LatexdiffVc,
		Dir:           p.Dir,
		Doc:           p.Doc,
		DiffDirName:   p.DiffDirName,
		DiffDoc:       p.DiffDoc,
		TmpDir:        p.TmpDir,
		Verbose:       p.LatexmkOpts.Verbose,
		Opts:          &p.LatexdiffVcOpts,
		LatexdiffOpts: &p.LatexdiffOpts,
	}
}
