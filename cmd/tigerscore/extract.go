package main

import (
	"fmt"

	"github.com/ughe/tigerscore/transcript"
)

type ExtractCmd struct {
	File  string `arg:"" help:"Transcript json saved by transcribe" type:"existingfile"`
	Field string `short:"f" help:"Field to extract" enum:"service,version,text,milliseconds,date,raw" default:"text"`
	Stat  bool   `help:"Combined, human-readable summary of all metadata"`
}

func (c *ExtractCmd) Run(g *Globals) error {
	result, err := transcript.Load(c.File)
	if err != nil {
		return err
	}
	if c.Stat {
		fmt.Fprintf(g.out, "service: %s\n", result.Service)
		fmt.Fprintf(g.out, "version: %s\n", result.Version)
		fmt.Fprintf(g.out, "millis:  %d\n", result.Duration)
		fmt.Fprintf(g.out, "date:    %s\n", result.Date)
		fmt.Fprintf(g.out, "chars:   %d\n", len([]rune(result.FullText)))
		return nil
	}
	out, err := transcript.Extract(result, c.Field)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.out, out)
	return nil
}
