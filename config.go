package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Latexmk     string   `yaml:"latexmk"`
	LatexdiffVc string   `yaml:"latexdiff-vc"`
	TmpDir      string   `yaml:"tmpdir"`
	OutDir      string   `yaml:"outdir"`
	DiffName    string   `yaml:"diff-name"`
	DiffPostfix string   `yaml:"diff-postfix"`
	AsyncDiff   bool     `yaml:"async-diff"`
	Engine      string   `yaml:"engine"`
	Bib         string   `yaml:"bib"`
	Synctex     bool     `yaml:"synctex"`
	VCS         string   `yaml:"vcs"`
	Keep        []string `yaml:"keep"`
}

func NewConfig() *Config {
	return &Config{
		Latexmk:     "latexmk",
		LatexdiffVc: "latexdiff-vc",
		TmpDir:      "",
		OutDir:      "",
		DiffName:    "diff",
		DiffPostfix: "",
		AsyncDiff:   false,
		Engine:      "",
		Bib:         "",
		Synctex:     false,
		VCS:         "",
		Keep:        []string{},
	}
}

const defaultConfigPath = "latexdiffmk.yaml"

// LoadConfig reads the config at path. When the file does not exist the
// defaults are returned, unless the path was asked for explicitly.
func LoadConfig(path string, explicit bool) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return NewConfig(), nil
		}
		return nil, err
	}

	defer file.Close()
	config := NewConfig()
	err = yaml.NewDecoder(file).Decode(config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Engine {
	case "", "xelatex", "lualatex":
	default:
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	switch c.Bib {
	case "", "bibtex", "biber", "nobibtex":
	default:
		return fmt.Errorf("config: unknown bib %q", c.Bib)
	}
	switch c.VCS {
	case "", "git", "svn", "hg", "cvs", "rcs":
	default:
		return fmt.Errorf("config: unknown vcs %q", c.VCS)
	}
	return nil
}

func WriteConfig(path string, config *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	err = encoder.Encode(config)
	return err
}
