// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command pdxscript parses PDX script files, pretty-prints their
// trees, and batch-checks mod file sets.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/cktools/pdxscript"
	"github.com/cktools/pdxscript/reporter"
	"github.com/cktools/pdxscript/vfs"
)

type cli struct {
	Config   string   `short:"c" type:"path" help:"YAML configuration file supplying defaults for the path flags."`
	GamePath string   `type:"path" help:"Path to the base game folder."`
	ModPath  []string `type:"path" help:"Mod root folders, most specific last."`
	Digits   uint8    `default:"3" help:"Fractional digits for decimal values."`

	Print printCmd `cmd:"" help:"Parse a script file and pretty-print its tree."`
	Check checkCmd `cmd:"" help:"Parse files and report their diagnostics."`
}

// config mirrors the path flags; flags win over file values.
type config struct {
	GamePath string   `yaml:"game-path"`
	ModPath  []string `yaml:"mod-path"`
}

func (c *cli) applyConfig() error {
	if c.Config == "" {
		return nil
	}
	data, err := os.ReadFile(c.Config)
	if err != nil {
		return err
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", c.Config, err)
	}
	if c.GamePath == "" {
		c.GamePath = cfg.GamePath
	}
	if len(c.ModPath) == 0 {
		c.ModPath = cfg.ModPath
	}
	return nil
}

// overlay builds the resolver stack, or nil when no game path is
// configured (paths then resolve as ordinary files).
func (c *cli) overlay() *vfs.Overlay {
	if c.GamePath == "" {
		return nil
	}
	o := vfs.New(c.GamePath)
	for _, mod := range c.ModPath {
		o.Push(mod)
	}
	return o
}

func (c *cli) parser(queue *reporter.Queue, save bool) *pdxscript.Parser {
	p := &pdxscript.Parser{
		Reporter: queue,
		IsSave:   save,
		Digits:   c.Digits,
	}
	if o := c.overlay(); o != nil {
		p.Resolver = o
	}
	return p
}

func reportDiagnostics(queue *reporter.Queue) {
	for _, d := range queue.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}
}

type printCmd struct {
	Path string `arg:"" help:"Logical script path (or plain file path without --game-path)."`
	Save bool   `help:"Parse as a save-game (skips the header token)."`
}

func (cmd *printCmd) Run(c *cli) error {
	queue := new(reporter.Queue)
	block, err := c.parser(queue, cmd.Save).Parse(cmd.Path)
	reportDiagnostics(queue)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	if err := block.Print(w, 0); err != nil {
		return err
	}
	return w.Flush()
}

type checkCmd struct {
	Patterns []string `arg:"" help:"Script paths or doublestar globs (e.g. 'common/**/*.txt')."`
	Save     bool     `help:"Parse as save-games."`
	Jobs     int      `short:"j" help:"Maximum files parsed in parallel."`
}

func (cmd *checkCmd) Run(c *cli) error {
	paths, err := cmd.expand(c.overlay())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no files matched")
	}

	queue := new(reporter.Queue)
	p := c.parser(queue, cmd.Save)
	p.MaxParallelism = cmd.Jobs
	_, err = p.ParseFiles(context.Background(), paths...)
	reportDiagnostics(queue)
	if err != nil {
		return err
	}
	slog.Info("check passed", "files", len(paths), "diagnostics", len(queue.Diagnostics()))
	return nil
}

// expand turns the argument patterns into concrete logical paths,
// through the overlay when one is configured and against the local
// filesystem otherwise.
func (cmd *checkCmd) expand(o *vfs.Overlay) ([]string, error) {
	var paths []string
	for _, pat := range cmd.Patterns {
		var matches []string
		var err error
		if o != nil {
			matches, err = o.Glob(pat)
		} else {
			matches, err = doublestar.FilepathGlob(pat)
		}
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			// A non-glob argument names one file directly.
			matches = []string{pat}
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("pdxscript"),
		kong.Description("Parse and validate PDX script files."),
		kong.UsageOnError(),
	)
	if err := c.applyConfig(); err != nil {
		slog.Error("configuration failed", "err", err)
		os.Exit(1)
	}
	if err := ctx.Run(&c); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}
