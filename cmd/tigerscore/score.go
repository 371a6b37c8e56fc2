package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ughe/tigerscore/score"
	"github.com/ughe/tigerscore/transcript"
)

type ScoreCmd struct {
	Reference  string `arg:"" help:"Reference transcript (.txt, or .json saved by transcribe)" type:"existingfile"`
	Hypothesis string `arg:"" help:"Hypothesis transcript (.txt, or .json saved by transcribe)" type:"existingfile"`
	Detail     bool   `short:"d" help:"Also print the detailed analysis"`
	JSON       bool   `help:"Print the result as json"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	ref, err := transcript.ReadText(c.Reference)
	if err != nil {
		return err
	}
	hyp, err := transcript.ReadText(c.Hypothesis)
	if err != nil {
		return err
	}

	if !c.Detail {
		result, err := score.Evaluate(ref, hyp)
		if err != nil {
			return fmt.Errorf("%v: %w", c.Reference, err)
		}
		if c.JSON {
			return json.NewEncoder(g.out).Encode(result)
		}
		printRates(g.out, result)
		return nil
	}

	detail, err := score.Analyze(ref, hyp)
	if err != nil {
		return fmt.Errorf("%v: %w", c.Reference, err)
	}
	if c.JSON {
		return json.NewEncoder(g.out).Encode(detail)
	}
	printRates(g.out, detail.Result)
	printDetail(g.out, detail)
	return nil
}

func printRates(w io.Writer, r score.Result) {
	fmt.Fprintf(w, "Word Error Rate (WER): %.4f\n", r.WER)
	fmt.Fprintf(w, "Character Error Rate (CER): %.4f\n", r.CER)
}

func printDetail(w io.Writer, d *score.Detail) {
	fmt.Fprintf(w, "\nDetailed Analysis:\n%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(w, "Total words in reference: %d\n", d.RefWords)
	fmt.Fprintf(w, "Total characters in reference: %d\n", d.RefChars)
	fmt.Fprintf(w, "Number of word errors: %d (sub %d, ins %d, del %d)\n",
		d.Words.Edits(), d.Words.Substitutions, d.Words.Insertions, d.Words.Deletions)
	fmt.Fprintf(w, "Number of character errors: %d (sub %d, ins %d, del %d)\n",
		d.Chars.Edits(), d.Chars.Substitutions, d.Chars.Insertions, d.Chars.Deletions)
}
