package main

import (
	"fmt"
	"time"
)

// diff runs latexdiff-vc, moves the generated source into the temp
// directory and typesets it into the diff directory. Every step needs the
// previous one to have succeeded.
func (d *Dispatcher) diff(mode outputMode) error {
	vc := d.Param.LatexdiffVcRunner()

	start := time.Now()
	err := d.runTool(vc.Command(), "latexdiff-vc", mode)
	fmt.Fprintf(d, "latexdiff-vc took %d ms\n", time.Since(start).Milliseconds())
	if err != nil {
		return err
	}

	err = vc.RenameTex()
	if err != nil {
		return err
	}
	d.logf("moved %s to %s\n", vc.GeneratedPath(), vc.RelocatedPath())

	mk := d.Param.DiffLatexmk()
	cmd, err := mk.Command()
	if err != nil {
		return err
	}
	err = d.runTool(cmd, "latexmk", mode)
	if err != nil {
		return err
	}

	err = mk.Relocate()
	if err != nil {
		return err
	}
	d.logf("%s.pdf delivered to %s\n", mk.Doc, mk.OutDir)
	return nil
}
