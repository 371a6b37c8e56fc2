package main

import (
	"fmt"
	"os"

	"github.com/ughe/tigerscore/editdist"
	"github.com/ughe/tigerscore/score"
)

type EditdistCmd struct {
	Test  string `arg:"" help:"Transcript under test" type:"existingfile"`
	Truth string `arg:"" help:"Ground truth transcript" type:"existingfile"`
	CER   bool   `short:"c" help:"Output character error rate of the normalized texts instead of levenshtein dist"`
	Table bool   `short:"t" help:"Also print the edit distance table"`
}

func (c *EditdistCmd) Run(g *Globals) error {
	bufa, err := os.ReadFile(c.Test)
	if err != nil {
		return err
	}
	bufb, err := os.ReadFile(c.Truth)
	if err != nil {
		return err
	}
	if c.CER {
		cer, err := score.CER(string(bufb), string(bufa))
		if err != nil {
			return fmt.Errorf("%v: %w", c.Truth, err)
		}
		fmt.Fprintf(g.out, "%.5f\n", cer)
		return nil
	}

	a, b := []rune(string(bufa)), []rune(string(bufb))
	if c.Table {
		m := editdist.Table(a, b)
		fmt.Fprintf(g.out, "%s\n", editdist.Render(a, b, m))
	}
	fmt.Fprintf(g.out, "%d\n", editdist.Levenshtein(a, b))
	return nil
}
