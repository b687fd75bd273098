package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flare/internal/analyzer"
	"flare/internal/config"
	"flare/internal/diag"
	"flare/internal/diagfmt"
	"flare/internal/driver"
	"flare/internal/eventlog"
	"flare/internal/observ"
	"flare/internal/source"
	"flare/internal/textlint"
	"flare/internal/ui"
	"flare/internal/update"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Run diagnostics over documents and print the published results",
	Long:  `Open every matching document in a workspace, dispatch the eligible analysis kinds through the pipeline, and print the diagnostics the update protocol published`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel document analyses (0=auto)")
	checkCmd.Flags().String("event-log", "", "append every created/removed event to a msgpack journal")
	checkCmd.Flags().String("ui", "off", "live progress view (auto|on|off)")
	checkCmd.Flags().String("paths", "auto", "path display in pretty output (auto|abs|rel|base)")
	checkCmd.Flags().Bool("show-kind", false, "prefix each diagnostic with the analysis kind that produced it")
	checkCmd.Flags().Bool("syntax", true, "enable syntax analysis")
	checkCmd.Flags().Bool("semantic", true, "enable semantic analysis")
	checkCmd.Flags().Bool("script-semantic", false, "enable semantic analysis for scripts only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	timer := observ.NewTimer()
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	eventLogPath, err := cmd.Flags().GetString("event-log")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	pathsFlag, err := cmd.Flags().GetString("paths")
	if err != nil {
		return err
	}
	pathMode, err := diagfmt.ParsePathMode(pathsFlag)
	if err != nil {
		return err
	}
	showKind, err := cmd.Flags().GetBool("show-kind")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	traceOn, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	endLoad := timer.Begin(observ.PhaseLoad)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, haveManifest, err := config.Load(startDir)
	if err != nil {
		return err
	}
	opts := driver.DefaultOptions()
	wsName := "flare"
	if haveManifest {
		opts = manifest.Config.Analysis.Options()
		if manifest.Config.Analysis.MaxDiagnostics > 0 && !cmd.Flags().Changed("max-diagnostics") {
			maxDiags = manifest.Config.Analysis.MaxDiagnostics
		}
		if manifest.Config.Workspace.Name != "" {
			wsName = manifest.Config.Workspace.Name
		}
	}
	// Explicit flags win over the manifest.
	if cmd.Flags().Changed("syntax") {
		opts.Syntax, _ = cmd.Flags().GetBool("syntax")
	}
	if cmd.Flags().Changed("semantic") {
		opts.Semantic, _ = cmd.Flags().GetBool("semantic")
	}
	if cmd.Flags().Changed("script-semantic") {
		opts.ScriptSemantic, _ = cmd.Flags().GetBool("script-semantic")
	}

	files, err := collectFiles(target, info)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Println("no documents to check")
		}
		return nil
	}

	ws := source.NewWorkspace(wsName)
	projects := map[string]source.ProjectID{}
	docs := make([]source.DocumentID, 0, len(files))
	paths := make([]string, 0, len(files))
	for _, path := range files {
		lang := languageFor(path)
		proj, ok := projects[lang]
		if !ok {
			proj = ws.AddProject(lang, lang)
			projects[lang] = proj
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		id, err := ws.Open(proj, path, kindFor(path), content)
		if err != nil {
			return err
		}
		docs = append(docs, id)
		paths = append(paths, path)
	}

	reg := analyzer.NewRegistry()
	lint := textlint.New()
	for lang := range projects {
		if err := reg.RegisterNative(lang, lint); err != nil {
			return err
		}
	}

	pub := update.NewPublisher()
	rec := update.NewRecorder()
	pub.Subscribe(rec)

	if eventLogPath != "" {
		journal, err := eventlog.Create(eventLogPath)
		if err != nil {
			return err
		}
		defer journal.Close()
		pub.Subscribe(journal)
	}

	useTUI := shouldUseTUI(mode)
	var uiEvents chan ui.Event
	if useTUI {
		uiEvents = make(chan ui.Event, 256)
		pub.Subscribe(ui.Sink{Workspace: ws, Ch: uiEvents})
	}

	logf := func(string, ...any) {}
	if traceOn {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "flare: "+format+"\n", args...)
		}
	}
	orch, err := driver.New(driver.Config{
		Workspace:      ws,
		Registry:       reg,
		Publisher:      pub,
		Options:        opts,
		MaxDiagnostics: maxDiags,
		Jobs:           jobs,
		Logf:           logf,
	})
	if err != nil {
		return err
	}
	endLoad(fmt.Sprintf("%d documents", len(docs)))

	endAnalyze := timer.Begin(observ.PhaseAnalyze)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if useTUI {
		err = openAllWithUI(ctx, orch, docs, paths, jobs, uiEvents)
	} else {
		err = openAll(ctx, orch, docs, jobs)
	}
	if err != nil {
		return err
	}
	endAnalyze("")

	endReport := timer.Begin(observ.PhaseReport)
	records := collectRecords(ws, rec, maxDiags*len(docs))
	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, records, ws, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(os.Stdout, records, ws, diagfmt.PrettyOpts{
			Color:    useColor(colorMode, os.Stdout),
			PathMode: pathMode,
			ShowKind: showKind,
		})
		if !quiet {
			fmt.Printf("%d documents checked, %d diagnostics\n", len(docs), len(records))
		}
	}
	endReport("")

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if hasErrors(records) {
		os.Exit(1)
	}
	return nil
}

func openAll(ctx context.Context, orch *driver.Orchestrator, docs []source.DocumentID, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(docs)))
	for _, id := range docs {
		g.Go(func() error {
			orch.DocumentOpened(gctx, id)
			return nil
		})
	}
	return g.Wait()
}

func openAllWithUI(ctx context.Context, orch *driver.Orchestrator, docs []source.DocumentID, paths []string, jobs int, events chan ui.Event) error {
	done := make(chan error, 1)
	go func() {
		done <- openAll(ctx, orch, docs, jobs)
		close(events)
	}()

	model := ui.NewProgressModel("checking documents", paths, len(diag.Kinds), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	err := <-done
	if uiErr != nil {
		return uiErr
	}
	return err
}

// collectRecords flattens the latest created batch of every still-active
// identity into one deterministically ordered list.
func collectRecords(ws *source.Workspace, rec *update.Recorder, max int) []diag.Record {
	if max <= 0 {
		max = driver.DefaultMaxDiagnostics
	}
	bag := diag.NewBag(max)
	for _, id := range ws.Documents() {
		for _, kind := range diag.Kinds {
			identity := update.NewIdentity(ws.Name(), kind, id)
			ev, ok := rec.Last(identity)
			if !ok || ev.Kind != update.EventCreated {
				continue
			}
			bag.AddAll(ev.Created.Records)
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag.Items()
}

func hasErrors(records []diag.Record) bool {
	for _, r := range records {
		if r.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

func collectFiles(target string, info os.FileInfo) ([]string, error) {
	if !info.IsDir() {
		return []string{target}, nil
	}
	var files []string
	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func languageFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return "markdown"
	}
	return "text"
}

func kindFor(path string) source.SourceKind {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "script.") || strings.Contains(base, ".script.") {
		return source.KindScript
	}
	return source.KindFile
}
