// Package main provides levelctl, an operator tool for listing, inspecting,
// checking and normalizing level definition files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/catalog"
	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/config"
	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/level"
	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/observability"
)

const usage = `usage: levelctl [-config <file>] <command> [args]

commands:
  list [dir]               list level files with their names
  show <file>              print a summary of a level
  check <file>             validate a level and report dangling references
  fmt [-n] [-force] <file>
                           rewrite a level in canonical form
  get <file> <key>         print a top-level string field without parsing
  new [-name <n>] [dir]    create an empty level with a generated file name
  watch [dir]              print level files as they change
`

// errUsage marks a malformed command line; it exits with status 2.
var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every subcommand needs.
type app struct {
	cfg    config.Config
	store  *level.Store
	logger *zap.Logger
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("levelctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := flags.String("config", "", "path to configuration file; defaults and LEVELCTL_ environment variables apply when empty")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	presets := level.DefaultPresets()
	if cfg.Levels.PresetsFile != "" {
		presets, err = level.LoadPresets(cfg.Levels.PresetsFile, presets)
		if err != nil {
			fmt.Fprintf(stderr, "loading presets: %v\n", err)
			return 1
		}
		logger.Debug("presets loaded", zap.String("path", cfg.Levels.PresetsFile))
	}

	a := &app{
		cfg:    cfg,
		store:  level.NewStore(presets, logger),
		logger: logger,
		stdout: stdout,
	}

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "list":
		err = a.list(rest)
	case "show":
		err = a.show(rest)
	case "check":
		err = a.check(rest)
	case "fmt":
		err = a.format(rest, stderr)
	case "get":
		err = a.get(rest)
	case "new":
		err = a.create(rest, stderr)
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = a.watch(ctx, rest)
		stop()
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n", err)
		fmt.Fprint(stderr, usage)
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// dirArg returns the optional directory argument or the configured default.
func (a *app) dirArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return a.cfg.Levels.Dir, nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected at most one directory", errUsage)
	}
}

func (a *app) list(args []string) error {
	dir, err := a.dirArg(args)
	if err != nil {
		return err
	}
	entries, err := catalog.Scan(a.store, dir, a.cfg.Levels.Extension)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(tw, "%s\t<unreadable: %v>\t\n", filepath.Base(e.Path), e.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", filepath.Base(e.Path), e.Title(), e.Description)
	}
	return tw.Flush()
}

func (a *app) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show takes one file", errUsage)
	}
	lvl, err := a.store.Load(args[0])
	if err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintf(w, "name:        %s\n", lvl.Name)
	if lvl.Description != "" {
		fmt.Fprintf(w, "description: %s\n", lvl.Description)
	}
	fmt.Fprintf(w, "size:        %dx%d (ground at y=%d)\n", lvl.LevelWidth, lvl.LevelHeight, lvl.GroundY)
	fmt.Fprintf(w, "spawn:       %d,%d\n", lvl.PlayerSpawnX, lvl.PlayerSpawnY)
	if lvl.NextLevel != "" {
		fmt.Fprintf(w, "next level:  %s\n", lvl.NextLevel)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for _, c := range []struct {
		label string
		n     int
	}{
		{"platforms", len(lvl.Platforms)},
		{"items", len(lvl.Items)},
		{"triggers", len(lvl.Triggers)},
		{"blocks", len(lvl.Blocks)},
		{"moving blocks", len(lvl.MovingBlocks)},
		{"mobs", len(lvl.Mobs)},
		{"doors", len(lvl.Doors)},
		{"buttons", len(lvl.Buttons)},
		{"vaults", len(lvl.Vaults)},
		{"cutscenes", len(lvl.Cutscenes)},
		{"parallax layers", len(lvl.ParallaxLayers)},
		{"light sources", len(lvl.LightSources)},
	} {
		if c.n > 0 {
			fmt.Fprintf(tw, "  %s:\t%d\n", c.label, c.n)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "entities:    %d\n", lvl.EntityCount())
	return nil
}

func (a *app) check(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: check takes one file", errUsage)
	}
	lvl, err := a.store.Load(args[0])
	if err != nil {
		return err
	}
	for _, ref := range lvl.DanglingReferences() {
		fmt.Fprintf(a.stdout, "warning: %s refers to unknown %s\n", ref.From, ref.To)
	}
	if err := lvl.Validate(); err != nil {
		return fmt.Errorf("%s is invalid:\n%w", args[0], err)
	}
	fmt.Fprintf(a.stdout, "%s: ok (%d entities)\n", args[0], lvl.EntityCount())
	return nil
}

func (a *app) format(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dryRun := fs.Bool("n", false, "report whether the file would change without writing it")
	force := fs.Bool("force", false, "rewrite even when comment entries or unknown keys would be dropped")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: fmt takes one file", errUsage)
	}
	path := fs.Arg(0)

	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading level file %s: %w", path, err)
	}
	doc, err := document.ParseObject(string(original))
	if err != nil {
		return fmt.Errorf("loading level %s: %w", path, err)
	}
	dropped := level.Unbound(doc)
	lvl, err := a.store.LoadBytes(original)
	if err != nil {
		return fmt.Errorf("loading level %s: %w", path, err)
	}
	text := level.Serialize(lvl)

	// Verify the canonical text is loadable before it replaces anything.
	reloaded, err := a.store.LoadBytes([]byte(text))
	if err != nil {
		return fmt.Errorf("canonical form of %s failed to reload: %w", path, err)
	}
	if level.Serialize(reloaded) != text {
		return fmt.Errorf("canonical form of %s is not stable", path)
	}

	if text == string(original) {
		fmt.Fprintf(a.stdout, "%s: unchanged\n", path)
		return nil
	}
	if *dryRun {
		fmt.Fprintf(a.stdout, "%s: would reformat\n", path)
		listDropped(a.stdout, "would drop", dropped)
		return nil
	}
	if len(dropped) > 0 && !*force {
		listDropped(stderr, "would drop", dropped)
		return fmt.Errorf("%s: reformatting would drop %d piece(s) of content; rerun with -force to accept", path, len(dropped))
	}
	if err := a.store.Save(lvl, path); err != nil {
		return err
	}
	listDropped(stderr, "dropped", dropped)
	a.logger.Info("level reformatted", zap.String("path", path), zap.Int("dropped", len(dropped)))
	fmt.Fprintf(a.stdout, "%s: reformatted\n", path)
	return nil
}

func listDropped(w io.Writer, verb string, dropped []level.Dropped) {
	for _, d := range dropped {
		fmt.Fprintf(w, "  %s %s\n", verb, d)
	}
}

func (a *app) get(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: get takes a file and a key", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading level file %s: %w", args[0], err)
	}
	v, ok := document.ExtractString(string(data), args[1])
	if !ok {
		return fmt.Errorf("%s has no string field %q", args[0], args[1])
	}
	fmt.Fprintln(a.stdout, v)
	return nil
}

func (a *app) create(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "level name; the default name is used when empty")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	dir, err := a.dirArg(fs.Args())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating level directory %s: %w", dir, err)
	}

	lvl := level.NewLevelData()
	if *name != "" {
		lvl.Name = *name
	}
	path := filepath.Join(dir, "level_"+uuid.New().String()+a.cfg.Levels.Extension)
	if err := a.store.Save(lvl, path); err != nil {
		return err
	}
	a.logger.Info("level created", zap.String("path", path), zap.String("name", lvl.Name))
	fmt.Fprintln(a.stdout, path)
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	dir, err := a.dirArg(args)
	if err != nil {
		return err
	}
	w, err := catalog.NewWatcher(a.cfg.Levels.Extension, a.logger, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer w.Close()

	a.logger.Info("watching levels", zap.String("dir", dir))
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			a.report(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

// report prints one changed file with its current name, or "removed".
func (a *app) report(path string) {
	meta, err := a.store.ReadMetadata(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(a.stdout, "removed  %s\n", path)
	case err != nil:
		fmt.Fprintf(a.stdout, "changed  %s  <unreadable: %v>\n", path, err)
	default:
		fmt.Fprintf(a.stdout, "changed  %s  %s\n", path, meta.Name)
	}
}
