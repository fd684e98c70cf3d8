// Package main is a command-line harness for the textify editor add-ins.
// It loads a file into a buffer, registers the configured tools, and runs
// one action against it, so the library is exercisable without an editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/config"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/outline"
	"github.com/dshills/textify/internal/recent"
	"github.com/dshills/textify/internal/script"
	"github.com/dshills/textify/internal/textbuf"
	"github.com/dshills/textify/internal/tools/caseconv"
	"github.com/dshills/textify/internal/tools/codemap"
	"github.com/dshills/textify/internal/tools/count"
	"github.com/dshills/textify/internal/tools/definition"
	"github.com/dshills/textify/internal/tools/findreplace"
	"github.com/dshills/textify/internal/tools/jumpline"
	"github.com/dshills/textify/internal/tools/occurrences"
	"github.com/dshills/textify/internal/tools/trim"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	Language   string
	Write      bool
	MatchCase  bool
	WholeWord  bool
}

func run() int {
	opts, args := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	command, args := args[0], args[1:]
	switch command {
	case "outline":
		return runOutline(cfg, opts, args)
	case "trim":
		return runTrim(cfg, opts, args)
	case "count":
		return runCount(cfg, args)
	case "find":
		return runFind(cfg, opts, args)
	case "replace":
		return runReplace(cfg, opts, args)
	case "occurrences":
		return runOccurrences(cfg, opts, args)
	case "jump":
		return runJump(cfg, args)
	case "case":
		return runCase(cfg, opts, args)
	case "definition":
		return runDefinition(cfg, args)
	case "script":
		return runScript(cfg, opts, args)
	case "recent":
		return runRecent(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		flag.Usage()
		return 2
	}
}

func parseFlags() (options, []string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Language, "lang", "python", "Outline language")
	flag.BoolVar(&opts.Write, "w", false, "Write edits back to the file")
	flag.BoolVar(&opts.MatchCase, "case", false, "Case-sensitive search")
	flag.BoolVar(&opts.WholeWord, "word", false, "Whole-word search")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Textify - editor add-ins for text buffers\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textify [options] <command> [args] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  outline <file>               Print the code map\n")
		fmt.Fprintf(os.Stderr, "  trim <file>                  Strip trailing whitespace\n")
		fmt.Fprintf(os.Stderr, "  count <file>                 Character and line counts\n")
		fmt.Fprintf(os.Stderr, "  find <term> <file>           Count occurrences of a term\n")
		fmt.Fprintf(os.Stderr, "  replace <old> <new> <file>   Replace every occurrence\n")
		fmt.Fprintf(os.Stderr, "  occurrences <term> <file>    List match positions\n")
		fmt.Fprintf(os.Stderr, "  jump <line> <file>           Resolve a clamped jump target\n")
		fmt.Fprintf(os.Stderr, "  case <style> <word> <file>   Convert a word's case style\n")
		fmt.Fprintf(os.Stderr, "  definition <name> <file>     Locate a definition site\n")
		fmt.Fprintf(os.Stderr, "  script <name> <file>         Run a Lua transform\n")
		fmt.Fprintf(os.Stderr, "  recent                       Print the recent-files list\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("textify %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts, flag.Args()
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "textify.toml"
	}
	return dir + "/textify/textify.toml"
}

// loadBuffer reads a file into a buffer and a host context, and records it
// in the recent-files list when that tool is enabled.
func loadBuffer(cfg config.Config, path string) (*textbuf.Buffer, *host.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	buf := textbuf.New(path, string(data))
	ctx := &host.Context{
		Buffer:    buf,
		Cursor:    host.Cursor{Line: 1},
		Clipboard: &printClipboard{},
	}
	ctx.Navigator = &cliNavigator{ctx: ctx}

	if cfg.Tools.RecentFiles && cfg.Recent.Path != "" {
		if store, err := recent.NewStore(cfg.Recent.Path, cfg.Recent.MaxEntries); err == nil {
			_ = store.Add(path, true)
		}
	}
	return buf, ctx, nil
}

func saveBuffer(opts options, buf *textbuf.Buffer, path string) int {
	if !opts.Write {
		fmt.Print(buf.Text())
		if buf.LineCount() > 0 {
			fmt.Println()
		}
		return 0
	}
	if err := os.WriteFile(path, []byte(buf.Text()+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func report(res action.Result) int {
	if res.Status == action.StatusError {
		if res.Error != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", res.Error)
		}
		return 1
	}
	if res.Message != "" {
		fmt.Fprintln(os.Stderr, res.Message)
	}
	return 0
}

func runOutline(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.CodeMap {
		fmt.Fprintln(os.Stderr, "Error: code map is disabled in the configuration")
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: textify outline <file>")
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	builder := outline.NewBuilder(cfg.PatternsFor(opts.Language), outline.WithTabWidth(cfg.Outline.TabWidth))
	reg := action.NewRegistry()
	codemap.NewHandler(builder).Register(reg)

	res := reg.Dispatch(action.New(codemap.ActionOpen), ctx)
	if res.Status == action.StatusError {
		return report(res)
	}
	ol, ok := res.Data[codemap.DataOutline].(*outline.Outline)
	if !ok || ol.IsEmpty() {
		fmt.Fprintln(os.Stderr, "no symbols found")
		return 0
	}
	printSymbols(ol.Symbols, 0)
	return 0
}

func printSymbols(symbols []*outline.Symbol, depth int) {
	for _, sym := range symbols {
		label := sym.Name
		if sym.ValuePreview != "" {
			label += " = " + sym.ValuePreview
		}
		fmt.Printf("%s%-8s %s (line %d)\n",
			strings.Repeat("  ", depth), sym.Kind.String(), label, sym.Line)
		printSymbols(sym.Children, depth+1)
	}
}

func runTrim(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.Trim {
		fmt.Fprintln(os.Stderr, "Error: trim is disabled in the configuration")
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: textify trim <file>")
		return 2
	}
	buf, ctx, err := loadBuffer(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	trim.NewHandler().Register(reg)
	res := reg.Dispatch(action.New(trim.ActionTrim), ctx)
	if code := report(res); code != 0 {
		return code
	}
	if res.Status == action.StatusNoOp {
		return 0
	}
	return saveBuffer(opts, buf, args[0])
}

func runCount(cfg config.Config, args []string) int {
	if !cfg.Tools.Counters {
		fmt.Fprintln(os.Stderr, "Error: counters are disabled in the configuration")
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: textify count <file>")
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	count.NewHandler().Register(reg)
	res := reg.Dispatch(action.New(count.ActionStatus), ctx)
	fmt.Printf("%d line(s), %d character(s)\n",
		res.GetDataInt(count.DataLines), res.GetDataInt(count.DataTotal))
	return 0
}

func findAction(name, term string, opts options, cfg config.Config) action.Action {
	return action.New(name).
		WithText(term).
		WithExtra("matchCase", opts.MatchCase || cfg.Find.MatchCase).
		WithExtra("wholeWord", opts.WholeWord || cfg.Find.WholeWord).
		WithExtra("wrap", cfg.Find.Wrap)
}

func runFind(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.FindReplace {
		fmt.Fprintln(os.Stderr, "Error: find/replace is disabled in the configuration")
		return 1
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textify find <term> <file>")
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	findreplace.NewHandler().Register(reg)
	res := reg.Dispatch(findAction(findreplace.ActionCount, args[0], opts, cfg), ctx)
	return report(res)
}

func runReplace(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.FindReplace {
		fmt.Fprintln(os.Stderr, "Error: find/replace is disabled in the configuration")
		return 1
	}
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: textify replace <old> <new> <file>")
		return 2
	}
	buf, ctx, err := loadBuffer(cfg, args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	findreplace.NewHandler().Register(reg)
	a := findAction(findreplace.ActionReplaceAll, args[0], opts, cfg)
	a.Args.Replacement = args[1]
	res := reg.Dispatch(a, ctx)
	if code := report(res); code != 0 {
		return code
	}
	if res.Status == action.StatusNoOp {
		return 0
	}
	return saveBuffer(opts, buf, args[2])
}

func runOccurrences(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.Occurrences {
		fmt.Fprintln(os.Stderr, "Error: occurrence marking is disabled in the configuration")
		return 1
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textify occurrences <term> <file>")
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	occurrences.NewHandler(occurrences.Options{
		CaseSensitive: opts.MatchCase || cfg.Find.MatchCase,
		WholeWord:     opts.WholeWord || cfg.Find.WholeWord,
	}).Register(reg)

	res := reg.Dispatch(action.New(occurrences.ActionFind).WithText(args[0]), ctx)
	if res.Status == action.StatusError {
		return report(res)
	}
	ranges, _ := res.Data[occurrences.DataRanges].([]occurrences.Range)
	for _, rg := range ranges {
		fmt.Printf("%d:%d\n", rg.Line, rg.Start)
	}
	return 0
}

func runJump(cfg config.Config, args []string) int {
	if !cfg.Tools.JumpToLine {
		fmt.Fprintln(os.Stderr, "Error: jump-to-line is disabled in the configuration")
		return 1
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textify jump <line> <file>")
		return 2
	}
	target, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid line number %q\n", args[0])
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	jumpline.NewHandler().Register(reg)
	res := reg.Dispatch(action.New(jumpline.ActionJump).WithLine(target), ctx)
	return report(res)
}

func runCase(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.CaseConvert {
		fmt.Fprintln(os.Stderr, "Error: case conversion is disabled in the configuration")
		return 1
	}
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: textify case <style> <word> <file>")
		return 2
	}
	style, word, path := args[0], args[1], args[2]

	buf, ctx, err := loadBuffer(cfg, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Position the cursor on the first occurrence of the word, then convert
	// the word under the cursor, as a host keybinding would.
	reg := action.NewRegistry()
	findreplace.NewHandler().Register(reg)
	caseconv.NewHandler().Register(reg)

	found := reg.Dispatch(findAction(findreplace.ActionFindNext, word, opts, cfg), ctx)
	if found.Status != action.StatusOK {
		return report(found)
	}
	res := reg.Dispatch(action.New(caseconv.ActionConvert).WithExtra("style", style), ctx)
	if code := report(res); code != 0 {
		return code
	}
	if res.Status == action.StatusNoOp {
		return 1
	}
	return saveBuffer(opts, buf, path)
}

func runDefinition(cfg config.Config, args []string) int {
	if !cfg.Tools.Definition {
		fmt.Fprintln(os.Stderr, "Error: go-to-definition is disabled in the configuration")
		return 1
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textify definition <name> <file>")
		return 2
	}
	_, ctx, err := loadBuffer(cfg, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reg := action.NewRegistry()
	definition.NewHandler().Register(reg)
	res := reg.Dispatch(action.New(definition.ActionGoto).WithText(args[0]), ctx)
	return report(res)
}

func runScript(cfg config.Config, opts options, args []string) int {
	if !cfg.Tools.Script {
		fmt.Fprintln(os.Stderr, "Error: scripts are disabled in the configuration")
		return 1
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: textify script <name> <file>")
		return 2
	}
	buf, ctx, err := loadBuffer(cfg, args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	runner := script.NewRunner()
	if cfg.Script.Dir != "" {
		if err := runner.LoadDir(cfg.Script.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	reg := action.NewRegistry()
	script.NewHandler(runner).Register(reg)
	res := reg.Dispatch(action.New(script.ActionRun).WithExtra("name", args[0]), ctx)
	if code := report(res); code != 0 {
		return code
	}
	if res.Status == action.StatusNoOp {
		return 0
	}
	return saveBuffer(opts, buf, args[1])
}

func runRecent(cfg config.Config, args []string) int {
	if !cfg.Tools.RecentFiles {
		fmt.Fprintln(os.Stderr, "Error: recent files are disabled in the configuration")
		return 1
	}
	if cfg.Recent.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: recent.path is not configured")
		return 1
	}
	_ = args

	store, err := recent.NewStore(cfg.Recent.Path, cfg.Recent.MaxEntries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	existing, missing := store.Partition()
	for _, path := range existing {
		fmt.Println(path)
	}
	for _, path := range missing {
		fmt.Printf("%s (missing)\n", path)
	}
	return 0
}

// cliNavigator satisfies host.Navigator for CLI runs by updating the
// context's cursor and selection the way a host editor would.
type cliNavigator struct {
	ctx *host.Context
}

func (n *cliNavigator) JumpToLine(line int) error {
	n.ctx.Cursor = host.Cursor{Line: line}
	n.ctx.Selection = host.Selection{}
	fmt.Println("line " + strconv.Itoa(line))
	return nil
}

func (n *cliNavigator) Select(startLine, startCol, endLine, endCol int) error {
	n.ctx.Cursor = host.Cursor{Line: startLine, Column: startCol}
	n.ctx.Selection = host.Selection{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
	return nil
}

// printClipboard satisfies host.Clipboard by writing to stdout.
type printClipboard struct{}

func (printClipboard) Copy(text string) error {
	fmt.Println(text)
	return nil
}
