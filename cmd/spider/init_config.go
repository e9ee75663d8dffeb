package main

import (
	"errors"
	"fmt"

	"github.com/lox/spider/internal/config"
	"github.com/lox/spider/internal/fileutil"
)

// InitConfigCmd writes the default configuration
type InitConfigCmd struct {
	Path  string `arg:"" optional:"" default:"spider.hcl" help:"Where to write the config"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *InitConfigCmd) Run(_ *Globals) error {
	data := config.DefaultConfig().Render()

	write := fileutil.CreateAtomic
	if c.Force {
		write = fileutil.WriteFileAtomic
	}
	if err := write(c.Path, data, 0o644); err != nil {
		if errors.Is(err, fileutil.ErrExists) {
			return fmt.Errorf("%s already exists, use --force to overwrite", c.Path)
		}
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println("Wrote", c.Path)
	return nil
}
