package main

import (
	"fmt"

	"github.com/ughe/tigerscore/server"
)

type ServeCmd struct {
	Explorer string `help:"Explorer directory to serve at / (default: server.explorer_dir)" type:"path"`
	Port     int    `short:"p" help:"HTTP port (default: server.port)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg := g.cfg
	if c.Port > 0 {
		cfg.Server.Port = c.Port
	}
	dir := firstSet(c.Explorer, cfg.Server.ExplorerDir)
	fmt.Fprintf(g.out, "Serving HTTP on http://%s/ ...\n", cfg.Addr())
	return server.New(cfg.Addr(), dir, g.logger).Run(g.ctx)
}
