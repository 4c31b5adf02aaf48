package main

import (
	"path/filepath"
	"strings"
	"testing"
)

type fakeHost struct {
	wd          string
	exe         string
	args        []string
	executables int
}

func (h *fakeHost) Executable() (string, error) {
	h.executables++
	return h.exe, nil
}

func (h *fakeHost) Args() []string {
	return h.args
}

func (h *fakeHost) Getwd() (string, error) {
	return h.wd, nil
}

func TestNewParam_Defaults(t *testing.T) {
	wd := t.TempDir()
	p, err := NewParam(&Options{Doc: filepath.Join("paper", "main")}, &fakeHost{wd: wd})
	if err != nil {
		t.Fatalf("NewParam returned error: %v", err)
	}

	dir := filepath.Join(wd, "paper")
	checks := map[string][2]string{
		"Dir":         {p.Dir, dir},
		"Doc":         {p.Doc, "main"},
		"TmpDir":      {p.TmpDir, filepath.Join(dir, ".temp")},
		"OutDir":      {p.OutDir, dir},
		"DiffDirName": {p.DiffDirName, "diff"},
		"DiffDoc":     {p.DiffDoc, "main-diff"},
		"DiffOutDir":  {p.DiffOutDir(), filepath.Join(dir, "diff")},
		"Latexmk":     {p.Latexmk, "latexmk"},
		"LatexdiffVc": {p.LatexdiffVc, "latexdiff-vc"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
}

func TestNewParam_DiffNameDrivesPostfix(t *testing.T) {
	p, err := NewParam(&Options{Doc: "/doc/thesis", DiffName: "changes"}, &fakeHost{})
	if err != nil {
		t.Fatalf("NewParam returned error: %v", err)
	}
	if p.DiffDoc != "thesis-changes" {
		t.Fatalf("DiffDoc = %q, want thesis-changes", p.DiffDoc)
	}

	p, err = NewParam(&Options{Doc: "/doc/thesis", DiffName: "changes", DiffPostfix: "_d"}, &fakeHost{})
	if err != nil {
		t.Fatalf("NewParam returned error: %v", err)
	}
	if p.DiffDoc != "thesis_d" {
		t.Fatalf("DiffDoc = %q, want thesis_d", p.DiffDoc)
	}
}

func TestNewParam_CreatesAndCanonicalizesDirs(t *testing.T) {
	root := t.TempDir()
	opts := &Options{
		Doc:    "/doc/main",
		TmpDir: filepath.Join(root, "tmp"),
		OutDir: filepath.Join(root, "out", "nested"),
	}

	p, err := NewParam(opts, &fakeHost{})
	if err != nil {
		t.Fatalf("NewParam returned error: %v", err)
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(realRoot, "tmp"); p.TmpDir != want {
		t.Fatalf("TmpDir = %q, want %q", p.TmpDir, want)
	}
	if want := filepath.Join(realRoot, "out", "nested"); p.OutDir != want {
		t.Fatalf("OutDir = %q, want %q", p.OutDir, want)
	}
	if !isDir(p.TmpDir) || !isDir(p.OutDir) {
		t.Fatalf("expected tmpdir and outdir to exist")
	}
}

func TestNewParam_RejectsConflicts(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "engine", opts: Options{Doc: "/d/m", LatexmkOpts: LatexmkOpts{Xelatex: true, Lualatex: true}}},
		{name: "vcs", opts: Options{Doc: "/d/m", LatexdiffVcOpts: LatexdiffVcOpts{Svn: true, Git: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParam(&tt.opts, &fakeHost{}); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestNewParam_RejectsBadKeepPattern(t *testing.T) {
	_, err := NewParam(&Options{Doc: "/d/m", Keep: []string{"log", "[log"}}, &fakeHost{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), `"[log"`) {
		t.Fatalf("error should name the bad pattern: %v", err)
	}
}

func TestNewParam_AcceptsBraceAlternatives(t *testing.T) {
	p, err := NewParam(&Options{Doc: "/d/m", Keep: []string{"{log,bbl}"}}, &fakeHost{})
	if err != nil {
		t.Fatalf("NewParam returned error: %v", err)
	}
	if len(p.Keep) != 1 || !p.Keep[0].Match("bbl") || p.Keep[0].Match("aux") {
		t.Fatalf("unexpected keep globs: %v", p.Keep)
	}
}

func TestDiffNamesNeverCollide(t *testing.T) {
	for _, postfix := range []string{"-diff", "_", "x", ".old"} {
		p, err := NewParam(&Options{Doc: "/doc/main", DiffPostfix: postfix}, &fakeHost{})
		if err != nil {
			t.Fatalf("NewParam returned error: %v", err)
		}

		primary, diff := p.PrimaryLatexmk(), p.DiffLatexmk()
		for _, ext := range []string{".pdf", ".synctex.gz", ".tex", ".aux"} {
			if filepath.Join(primary.TmpDir, primary.artifact(ext)) == filepath.Join(diff.TmpDir, diff.artifact(ext)) {
				t.Fatalf("postfix %q: scratch %s collides", postfix, ext)
			}
			if filepath.Join(primary.OutDir, primary.artifact(ext)) == filepath.Join(diff.OutDir, diff.artifact(ext)) {
				t.Fatalf("postfix %q: output %s collides", postfix, ext)
			}
		}
	}
}
