// Package main is the entry point for the Easel canvas editor.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pzgaai/easel/internal/config"
	"github.com/pzgaai/easel/internal/config/watcher"
	"github.com/pzgaai/easel/internal/engine"
	"github.com/pzgaai/easel/internal/engine/element"
	"github.com/pzgaai/easel/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errQuit signals a clean exit from the command loop.
var errQuit = errors.New("quit")

type options struct {
	ConfigPath string
	LogLevel   string
	Document   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	logger := session.NewLogger(session.LoggerConfig{
		Level: session.ParseLogLevel(cfg.Logging.Level),
	})

	sess, err := session.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer sess.Close()

	if opts.Document != "" {
		if err := sess.Load(opts.Document); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading document: %v\n", err)
			return 1
		}
	}

	// Reload configuration when the file changes.
	if opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, func(path string) {
			reloaded, err := config.Load(path)
			if err != nil {
				logger.Error("reloading config: %v", err)
				return
			}
			if err := sess.ApplyConfig(reloaded); err != nil {
				logger.Error("applying config: %v", err)
			}
		})
		if err != nil {
			logger.Warn("config watch unavailable: %v", err)
		} else {
			defer w.Close()
		}
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		sess.Close()
		os.Exit(0)
	}()

	if err := commandLoop(sess, opts.Document); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "easel.toml", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "easel.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Easel - vector canvas editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: easel [options] [document.json]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  easel                       Start with an empty canvas\n")
		fmt.Fprintf(os.Stderr, "  easel drawing.json          Open a document\n")
		fmt.Fprintf(os.Stderr, "  easel -c custom.toml        Use a custom configuration\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Easel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		opts.Document = flag.Arg(0)
	}

	return opts
}

// commandLoop reads editing commands from stdin, one per line.
func commandLoop(sess *session.Session, document string) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("easel ready; type 'help' for commands")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := dispatch(sess, fields, document); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}

func dispatch(sess *session.Session, fields []string, document string) error {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "add":
		return cmdAdd(sess, args)
	case "move":
		return cmdMove(sess, args)
	case "rotate":
		return cmdRotate(sess, args)
	case "set":
		return cmdSet(sess, args)
	case "rm":
		if len(args) != 1 {
			return errors.New("usage: rm <id>")
		}
		return sess.Remove(args[0])
	case "forward":
		if len(args) != 1 {
			return errors.New("usage: forward <id>")
		}
		return sess.BringForward(args[0])
	case "backward":
		if len(args) != 1 {
			return errors.New("usage: backward <id>")
		}
		return sess.SendBackward(args[0])
	case "undo":
		r, err := sess.Undo()
		if err != nil {
			return err
		}
		fmt.Printf("undid %s (%s)\n", r.Tag, strings.Join(r.ChangedIDs, ", "))
		return nil
	case "redo":
		r, err := sess.Redo()
		if err != nil {
			return err
		}
		fmt.Printf("redid %s (%s)\n", r.Tag, strings.Join(r.ChangedIDs, ", "))
		return nil
	case "ls":
		for _, el := range sess.Elements() {
			fmt.Println(el)
		}
		return nil
	case "stats":
		printStats(sess.Stats())
		return nil
	case "history":
		for i, info := range sess.Engine().HistoryEntries() {
			fmt.Printf("%3d  %-10s  %-8s  %s\n", i, info.Kind, info.Tag, strings.Join(info.ChangedIDs, ", "))
		}
		return nil
	case "save":
		return sess.Save(pathArg(args, document))
	case "load":
		return sess.Load(pathArg(args, document))
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q; type 'help'", cmd)
	}
}

func cmdAdd(sess *session.Session, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <rect|ellipse|line|text|image> ...")
	}
	kind, rest := args[0], args[1:]

	var el engine.Element
	switch kind {
	case element.TypeRect, element.TypeEllipse, element.TypeLine:
		nums, err := floatArgs(rest, 4)
		if err != nil {
			return fmt.Errorf("usage: add %s <x> <y> <w> <h>", kind)
		}
		switch kind {
		case element.TypeRect:
			el = element.NewRect(nums[0], nums[1], nums[2], nums[3])
		case element.TypeEllipse:
			el = element.NewEllipse(nums[0], nums[1], nums[2], nums[3])
		default:
			el = element.NewLine(nums[0], nums[1], nums[2], nums[3])
		}
	case element.TypeText:
		if len(rest) < 3 {
			return errors.New("usage: add text <x> <y> <text...>")
		}
		nums, err := floatArgs(rest[:2], 2)
		if err != nil {
			return errors.New("usage: add text <x> <y> <text...>")
		}
		el = element.NewText(nums[0], nums[1], strings.Join(rest[2:], " "))
	case element.TypeImage:
		if len(rest) != 5 {
			return errors.New("usage: add image <x> <y> <w> <h> <href>")
		}
		nums, err := floatArgs(rest[:4], 4)
		if err != nil {
			return errors.New("usage: add image <x> <y> <w> <h> <href>")
		}
		el = element.NewImage(nums[0], nums[1], nums[2], nums[3], rest[4])
	default:
		return fmt.Errorf("unknown element type %q", kind)
	}

	added, err := sess.Add(el)
	if err != nil {
		return err
	}
	fmt.Printf("added %s\n", added.ID)
	return nil
}

func cmdMove(sess *session.Session, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: move <id> <x> <y>")
	}
	nums, err := floatArgs(args[1:], 2)
	if err != nil {
		return errors.New("usage: move <id> <x> <y>")
	}

	_, res, err := sess.Move(args[0], nums[0], nums[1])
	if err != nil {
		return err
	}
	if res.SnappedX || res.SnappedY {
		fmt.Printf("moved to (%g, %g), snapped to %d guide(s)\n", res.X, res.Y, len(res.Guides))
	} else {
		fmt.Printf("moved to (%g, %g)\n", res.X, res.Y)
	}
	return nil
}

func cmdRotate(sess *session.Session, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rotate <id> <degrees>")
	}
	angle, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.New("usage: rotate <id> <degrees>")
	}

	rotated, err := sess.Rotate(args[0], angle)
	if err != nil {
		return err
	}
	got, _ := rotated.Float(element.AttrRotation)
	fmt.Printf("rotated to %g\n", got)
	return nil
}

func cmdSet(sess *session.Session, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: set <id> <attr> <value>")
	}

	// Numbers become numbers; everything else stays a string.
	var value any = args[2]
	if f, err := strconv.ParseFloat(args[2], 64); err == nil {
		value = f
	}

	_, err := sess.Update(args[0], map[string]any{args[1]: value})
	return err
}

func printStats(stats engine.Stats) {
	fmt.Printf("entries:     %d\n", stats.Entries)
	fmt.Printf("deltas:      %d\n", stats.Deltas)
	fmt.Printf("checkpoints: %d\n", stats.Checkpoints)
	fmt.Printf("cursor:      %d\n", stats.Cursor)
	fmt.Printf("est. bytes:  %d\n", stats.EstimatedBytes)
}

func printHelp() {
	fmt.Println(`commands:
  add rect|ellipse|line <x> <y> <w> <h>
  add text <x> <y> <text...>
  add image <x> <y> <w> <h> <href>
  move <id> <x> <y>
  rotate <id> <degrees>
  set <id> <attr> <value>
  rm <id>
  forward <id> | backward <id>
  undo | redo
  ls | stats | history
  save [path] | load [path]
  quit`)
}

func pathArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	if fallback != "" {
		return fallback
	}
	return "easel.json"
}

func floatArgs(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numeric arguments", n)
	}
	nums := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", a, err)
		}
		nums[i] = f
	}
	return nums, nil
}
