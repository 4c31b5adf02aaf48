package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

type LatexdiffVcOpts struct {
	Git bool
	Svn bool
	Hg  bool
	Cvs bool
	Rcs bool

	Revisions []string

	Flatten                 bool
	FlattenKeepIntermediate bool
}

func (o *LatexdiffVcOpts) Validate() error {
	if countTrue(o.Git, o.Svn, o.Hg, o.Cvs, o.Rcs) > 1 {
		return fmt.Errorf("only one of --git, --svn, --hg, --cvs and --rcs can be used")
	}
	if o.Flatten && o.FlattenKeepIntermediate {
		return fmt.Errorf("--flatten and --flatten-keep-intermediate are mutually exclusive")
	}
	return nil
}

func (o *LatexdiffVcOpts) Args() []string {
	args := []string{}

	switch {
	case o.Git:
		args = append(args, "--git")
	case o.Svn:
		args = append(args, "--svn")
	case o.Hg:
		args = append(args, "--hg")
	case o.Cvs:
		args = append(args, "--cvs")
	case o.Rcs:
		args = append(args, "--rcs")
	}

	// A bare --revision compares against the latest committed version.
	if len(o.Revisions) == 0 {
		args = append(args, "--revision")
	}
	for _, rev := range o.Revisions {
		args = append(args, "--revision", rev)
	}

	if o.Flatten {
		args = append(args, "--flatten")
	} else if o.FlattenKeepIntermediate {
		args = append(args, "--flatten=keep-intermediate")
	}
	return args
}

// LatexdiffVc writes Dir/DiffDirName/Doc.tex and moves it into TmpDir as
// DiffDoc.tex.
type LatexdiffVc struct {
	Program       string
	Dir           string
	Doc           string
	DiffDirName   string
	DiffDoc       string
	TmpDir        string
	Verbose       bool
	Opts          *LatexdiffVcOpts
	LatexdiffOpts *LatexdiffOpts
}

func (v *LatexdiffVc) Command() *exec.Cmd {
	args := v.Opts.Args()
	args = append(args, v.LatexdiffOpts.Args(v.Verbose)...)
	args = append(args, "--force", "--dir="+v.DiffDirName, v.Doc+".tex")

	// latexdiff-vc matches the path against the repository, which only
	// works with a path relative to the working directory.
	cmd := exec.Command(v.Program, args...)
	cmd.Dir = v.Dir
	return cmd
}

func (v *LatexdiffVc) GeneratedPath() string {
	return filepath.Join(v.Dir, v.DiffDirName, v.Doc+".tex")
}

func (v *LatexdiffVc) RelocatedPath() string {
	return filepath.Join(v.TmpDir, v.DiffDoc+".tex")
}

func (v *LatexdiffVc) RenameTex() error {
	err := mkdirAll(v.TmpDir)
	if err != nil {
		return err
	}
	return renameFile(v.GeneratedPath(), v.RelocatedPath())
}
