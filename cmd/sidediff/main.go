// Command sidediff renders a side-by-side comparison of two files.
//
// Usage:
//
//	sidediff old.txt new.txt
//	sidediff -C 3 --threshold 40 old.go new.go
//	git show HEAD:file.go | sidediff --stdin file.go
//
// The engine in github.com/dacharyc/sidediff produces the aligned,
// annotated descriptor; everything below — colors, markers, visibility
// toggles — is paint-time policy applied here.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacharyc/sidediff"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // files are identical
	exitDiffer    = 1 // files differ
	exitError     = 2 // error occurred
)

// palette maps run kinds to ANSI sequences. Color resolution lives
// entirely on this side of the engine boundary; the descriptor never
// carries colors.
type palette map[sidediff.RunKind]string

const ansiReset = "\033[0m"

func defaultPalette() palette {
	return palette{
		sidediff.RunAdded:              "\033[0;32;1m", // bold green
		sidediff.RunDeleted:            "\033[0;31;1m", // bold red
		sidediff.RunIntraline:          "\033[0;36;1m", // bold cyan
		sidediff.RunTab:                "\033[0;90m",   // faint
		sidediff.RunTrailingWhitespace: "\033[41m",     // red background
	}
}

// config holds configuration from rc files.
type config struct {
	threshold   int
	context     int
	width       int
	lineNumbers bool
	noColor     bool
	summary     bool
	noTabs      bool
	noTrailing  bool
	noIntraline bool
}

// defaultConfig returns a config with default values.
func defaultConfig() config {
	return config{
		threshold:   sidediff.DefaultIntralineThreshold,
		context:     0,
		width:       0, // auto
		lineNumbers: true,
	}
}

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	threshold   *int
	context     *int
	width       *int
	lineNumbers *bool
	noColor     *bool
	summary     *bool
	noTabs      *bool
	noTrailing  *bool
	noIntraline *bool
	stdinMode   *bool
	help        *bool
	version     *bool
}

// prescanProfile extracts --profile value before flag parsing.
func prescanProfile() string {
	for i, arg := range os.Args[1:] {
		if arg == "--profile" && i+1 < len(os.Args)-1 {
			return os.Args[i+2]
		}
		if strings.HasPrefix(arg, "--profile=") {
			return strings.TrimPrefix(arg, "--profile=")
		}
	}
	return ""
}

// defineFlags sets up all command-line flags with config defaults.
func defineFlags(cfg config) cliFlags {
	_ = flag.String("profile", "", "use settings from ~/.sidediffrc.<profile>")

	f := cliFlags{
		threshold:   flag.IntP("threshold", "t", cfg.threshold, "minimum similarity percent (1-100) for intraline highlighting"),
		context:     flag.IntP("context", "C", cfg.context, "show only N rows of context around changes"),
		width:       flag.IntP("width", "w", cfg.width, "column width (0 for auto)"),
		lineNumbers: flag.BoolP("line-numbers", "L", cfg.lineNumbers, "show line numbers"),
		noColor:     flag.Bool("no-color", cfg.noColor, "disable colored output"),
		summary:     flag.BoolP("summary", "s", cfg.summary, "print change counts"),
		noTabs:      flag.Bool("no-tabs", cfg.noTabs, "do not highlight tab characters"),
		noTrailing:  flag.Bool("no-trailing", cfg.noTrailing, "do not highlight trailing whitespace"),
		noIntraline: flag.Bool("no-intraline", cfg.noIntraline, "do not paint character-level changes"),
		stdinMode:   flag.Bool("stdin", false, "read first input from stdin, second from argument"),
		help:        flag.BoolP("help", "h", false, "show help"),
		version:     flag.BoolP("version", "v", false, "show version"),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file1 file2\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [options] --stdin file2\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSide-by-side diff with intraline highlighting.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s old.txt new.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -C 3 -t 40 old.go new.go\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  git show HEAD:file.go | %s --stdin file.go\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  files are identical\n")
		fmt.Fprintf(os.Stderr, "  1  files differ\n")
		fmt.Fprintf(os.Stderr, "  2  error occurred\n")
	}

	return f
}

// clampThreshold keeps the intraline threshold inside the engine's
// documented [1, 100] domain; the engine does not re-validate it.
func clampThreshold(t int) int {
	if t < 1 {
		return 1
	}
	if t > 100 {
		return 100
	}
	return t
}

// readInputTexts reads input from stdin or files.
func readInputTexts(stdinMode bool) (text1, text2 string) {
	var err error
	if stdinMode {
		if flag.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: --stdin mode requires one file argument")
			os.Exit(exitError)
		}
		text1, err = readStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(exitError)
		}
		text2, err = readFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(0), err)
			os.Exit(exitError)
		}
	} else {
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: requires two file arguments")
			flag.Usage()
			os.Exit(exitError)
		}
		text1, err = readFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(0), err)
			os.Exit(exitError)
		}
		text2, err = readFile(flag.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(1), err)
			os.Exit(exitError)
		}
	}
	return
}

func main() {
	// Pre-scan for --profile before defining other flags
	profile := prescanProfile()

	configPath, err := findConfigFile(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configPath, err)
		os.Exit(exitError)
	}

	f := defineFlags(cfg)
	flag.Parse()

	if *f.version {
		fmt.Printf("sidediff version %s\n", Version)
		os.Exit(exitIdentical)
	}
	if *f.help {
		flag.Usage()
		os.Exit(exitIdentical)
	}

	text1, text2 := readInputTexts(*f.stdinMode)
	base := sidediff.SplitLines(text1)
	modi := sidediff.SplitLines(text2)

	opts := sidediff.Options{IntralineThreshold: clampThreshold(*f.threshold)}
	desc := sidediff.Compare(base, modi, opts)

	useColor := !*f.noColor && os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)

	view := viewOptions{
		width:       *f.width,
		lineNumbers: *f.lineNumbers,
		useColor:    useColor,
		pal:         defaultPalette(),
		suppress:    suppressedKinds(*f.noTabs, *f.noTrailing, *f.noIntraline),
	}
	if view.width <= 0 {
		view.width = autoWidth(desc)
	}

	printRows(os.Stdout, desc, desc.RowsWithContext(*f.context), view)

	if *f.summary {
		printSummary(desc)
	}

	if desc.HasChanges() {
		os.Exit(exitDiffer)
	}
	os.Exit(exitIdentical)
}

// suppressedKinds builds the set of run kinds skipped at paint time.
// Suppression never reaches the engine; the descriptor always carries
// the complete run data.
func suppressedKinds(noTabs, noTrailing, noIntraline bool) map[sidediff.RunKind]bool {
	s := make(map[sidediff.RunKind]bool)
	if noTabs {
		s[sidediff.RunTab] = true
	}
	if noTrailing {
		s[sidediff.RunTrailingWhitespace] = true
	}
	if noIntraline {
		s[sidediff.RunIntraline] = true
	}
	return s
}

// printSummary prints change counts to stderr.
func printSummary(desc *sidediff.DiffDescriptor) {
	c := desc.Counts
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "%d rows  %d added  %d deleted  %d changed  %d change blocks\n",
		desc.RowCount(), c.Added, c.Deleted, c.Changed, len(desc.Windows))
}

// readFile reads an entire file into a string.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readStdin reads all of stdin into a string.
func readStdin() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	var sb strings.Builder
	for {
		line, err := reader.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// isTerminal returns true if the file is a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// findConfigFile returns the path to the config file for the given
// profile. If a profile is specified but the file doesn't exist, it
// returns an error.
func findConfigFile(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // No home dir, use defaults
	}

	if profile == "" {
		path := filepath.Join(home, ".sidediffrc")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(home, ".config")
		}
		path = filepath.Join(xdgConfig, "sidediff", "config")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", nil // No default config found, use defaults
	}

	// Profile explicitly specified - file must exist
	path := filepath.Join(home, ".sidediffrc."+profile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("profile config file not found: %s", path)
	}
	return path, nil
}

// loadConfig reads a config file and returns the configuration.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if idx := strings.Index(line, "="); idx >= 0 {
			key = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		} else {
			key = line
			value = "true"
		}

		if err := applyConfigOption(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return cfg, scanner.Err()
}

// applyConfigOption sets a config field based on key and value.
func applyConfigOption(cfg *config, key, value string) error {
	switch key {
	case "threshold", "t":
		t := parseInt(value, -1)
		if t < 1 || t > 100 {
			return fmt.Errorf("threshold must be an integer between 1 and 100")
		}
		cfg.threshold = t
	case "context", "C":
		cfg.context = parseInt(value, 0)
	case "width", "w":
		cfg.width = parseInt(value, 0)
	case "line-numbers", "L":
		cfg.lineNumbers = parseBool(value)
	case "no-color":
		cfg.noColor = parseBool(value)
	case "summary", "s":
		cfg.summary = parseBool(value)
	case "no-tabs":
		cfg.noTabs = parseBool(value)
	case "no-trailing":
		cfg.noTrailing = parseBool(value)
	case "no-intraline":
		cfg.noIntraline = parseBool(value)
	default:
		return fmt.Errorf("unknown option: %s", key)
	}
	return nil
}

// parseBool parses a boolean value from a string.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "yes" || s == "1" || s == ""
}

// parseInt parses an integer value from a string.
func parseInt(s string, defaultVal int) int {
	var val int
	_, err := fmt.Sscanf(s, "%d", &val)
	if err != nil {
		return defaultVal
	}
	return val
}
