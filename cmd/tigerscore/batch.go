package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ughe/tigerscore/report"
)

type BatchCmd struct {
	RefDir  string `arg:"" help:"Directory of reference transcripts" type:"existingdir"`
	HypDir  string `arg:"" optional:"" help:"Directory of hypotheses (default: the reference directory)" type:"existingdir"`
	Workers int    `short:"w" help:"Concurrent scorers (default: batch.workers)"`
	Ext     string `help:"Reference file extension (default: batch.reference_ext)"`
	Out     string `short:"o" help:"Directory to write results.csv and results.pdf" default:"." type:"path"`
	PDF     bool   `help:"Also write results.pdf"`
	Title   string `help:"PDF report title (default: report.title)"`
}

func (c *BatchCmd) Run(g *Globals) error {
	cfg := g.cfg
	hypDir := c.HypDir
	if hypDir == "" {
		hypDir = c.RefDir
	}
	ext := firstSet(c.Ext, cfg.Batch.ReferenceExt)
	workers := c.Workers
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	pairs, err := report.Pairs(c.RefDir, hypDir, ext)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "[INFO] Number of pairs: %d\n", len(pairs))

	r, err := report.Run(g.ctx, pairs, workers, g.logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Out, 0755); err != nil {
		return err
	}
	if cfg.Report.CSV {
		dst := filepath.Join(c.Out, "results.csv")
		f, err := os.Create(dst)
		if err != nil {
			return err
		}
		if err := report.WriteCSV(f, r); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(g.out, "[INFO] Wrote %v\n", dst)
	}
	if c.PDF || cfg.Report.PDF {
		dst := filepath.Join(c.Out, "results.pdf")
		if err := report.WritePDF(dst, r, firstSet(c.Title, cfg.Report.Title)); err != nil {
			return err
		}
		fmt.Fprintf(g.out, "[INFO] Wrote %v\n", dst)
	}

	s := r.Summary
	fmt.Fprintf(g.out, "run:        %s\n", r.ID)
	fmt.Fprintf(g.out, "scored:     %d\n", s.Scored)
	fmt.Fprintf(g.out, "failed:     %d\n", s.Failed)
	fmt.Fprintf(g.out, "mean wer:   %.5f\n", s.MeanWER)
	fmt.Fprintf(g.out, "mean cer:   %.5f\n", s.MeanCER)
	fmt.Fprintf(g.out, "corpus wer: %.5f\n", s.CorpusWER)
	fmt.Fprintf(g.out, "corpus cer: %.5f\n", s.CorpusCER)
	return nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
