package main

import (
	"fmt"
	"path/filepath"

	"github.com/ughe/explorer"
	"github.com/ughe/tigerscore/util"
)

type ExploreCmd struct {
	Results string `arg:"" help:"results.csv written by batch" type:"existingfile"`
	Dir     string `help:"Directory to create the site in" default:"explorer" type:"path"`
}

func (c *ExploreCmd) Run(g *Globals) error {
	results, err := util.Read(c.Results)
	if err != nil {
		return err
	}

	// Static files of the explorer site
	files := map[string][]byte{
		filepath.Join(c.Dir, "index.html"):          explorer.Index,
		filepath.Join(c.Dir, "style.css"):           explorer.Style,
		filepath.Join(c.Dir, "js", "main.js"):       explorer.Main,
		filepath.Join(c.Dir, "js", "grid.js"):       explorer.Grid,
		filepath.Join(c.Dir, "data", "results.csv"): results,
	}
	for dst, buf := range files {
		if err := util.Write(buf, dst); err != nil {
			return err
		}
	}
	g.logger.Debug("explorer written", "dir", c.Dir, "files", len(files))
	fmt.Fprintf(g.out, "[DONE] Run: tigerscore serve --explorer %s\n", c.Dir)
	return nil
}
