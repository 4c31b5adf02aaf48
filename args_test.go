package main

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLatexmkOptsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts LatexmkOpts
		want []string
	}{
		{
			name: "defaults",
			want: []string{"-halt-on-error", "-file-line-error"},
		},
		{
			name: "everything",
			opts: LatexmkOpts{Lualatex: true, Biber: true, Quiet: true, Commands: true, Synctex: true},
			want: []string{"-halt-on-error", "-file-line-error", "-lualatex", "-biber", "-quiet", "-commands", "-synctex=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLatexmkOptsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts LatexmkOpts
	}{
		{name: "engines", opts: LatexmkOpts{Xelatex: true, Lualatex: true}},
		{name: "bib", opts: LatexmkOpts{Bibtex: true, NoBibtex: true}},
		{name: "verbosity", opts: LatexmkOpts{Silent: true, Verbose: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestLatexmkCommand(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "scratch")
	mk := &Latexmk{
		Program: "latexmk",
		Dir:     "/doc",
		Doc:     "main",
		TmpDir:  tmp,
		OutDir:  "/out",
		Opts:    &LatexmkOpts{},
	}

	cmd, err := mk.Command()
	if err != nil {
		t.Fatalf("Command() returned error: %v", err)
	}

	want := []string{"latexmk", "-halt-on-error", "-file-line-error", "-outdir=" + tmp, "-auxdir=" + tmp, filepath.Join("/doc", "main")}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	if !isDir(tmp) {
		t.Fatalf("expected %s to be created", tmp)
	}
}

func TestLatexdiffVcOptsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts LatexdiffVcOpts
		want []string
	}{
		{
			name: "last commit",
			want: []string{"--revision"},
		},
		{
			name: "two revisions",
			opts: LatexdiffVcOpts{Git: true, Revisions: []string{"v1", "v2"}, FlattenKeepIntermediate: true},
			want: []string{"--git", "--revision", "v1", "--revision", "v2", "--flatten=keep-intermediate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLatexdiffVcOptsValidate(t *testing.T) {
	if err := (&LatexdiffVcOpts{Git: true, Hg: true}).Validate(); err == nil {
		t.Fatalf("expected error for two VCS")
	}
	if err := (&LatexdiffVcOpts{Flatten: true, FlattenKeepIntermediate: true}).Validate(); err == nil {
		t.Fatalf("expected error for both flatten modes")
	}
}

func TestLatexdiffOptsArgs(t *testing.T) {
	got := (&LatexdiffOpts{}).Args(false)
	if want := []string{"--encoding=utf8"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}

	opts := &LatexdiffOpts{
		Type:         "CFONT",
		Encoding:     "latin1",
		MathMarkup:   "coarse",
		Label:        "v1",
		VisibleLabel: true,
	}
	got = opts.Args(true)
	want := []string{"--type=CFONT", "--encoding=latin1", "--math-markup=coarse", "--verbose", "--label=v1", "--visible-label"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
}

func TestLatexdiffVcCommand(t *testing.T) {
	vc := &LatexdiffVc{
		Program:       "latexdiff-vc",
		Dir:           "/doc",
		Doc:           "main",
		DiffDirName:   "diff",
		DiffDoc:       "main-diff",
		TmpDir:        "/doc/.temp",
		Opts:          &LatexdiffVcOpts{Git: true},
		LatexdiffOpts: &LatexdiffOpts{},
	}

	cmd := vc.Command()
	want := []string{"latexdiff-vc", "--git", "--revision", "--encoding=utf8", "--force", "--dir=diff", "main.tex"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	if cmd.Dir != "/doc" {
		t.Fatalf("Dir = %q, want /doc", cmd.Dir)
	}
	if got := vc.GeneratedPath(); got != filepath.Join("/doc", "diff", "main.tex") {
		t.Fatalf("GeneratedPath() = %q", got)
	}
	if got := vc.RelocatedPath(); got != filepath.Join("/doc", ".temp", "main-diff.tex") {
		t.Fatalf("RelocatedPath() = %q", got)
	}
}
