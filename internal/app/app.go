// Package app implements the analysis service for linger.
package app

import (
	"context"
	"errors"
	"maps"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/linger/internal/adapters/golangci" //nolint:depguard // Exit code classification is tool specific
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/linger/internal/engine/coordinator"
	"go.trai.ch/linger/internal/engine/reconcile"
	"go.trai.ch/linger/internal/engine/resultcache"
	"go.trai.ch/zerr"
)

// maxStderrMetadata bounds the stderr excerpt attached to execution errors.
const maxStderrMetadata = 2048

// AnalyzeRequest asks for the issues of one document.
type AnalyzeRequest struct {
	// FilePath is the document being analyzed.
	FilePath string
	// WorkingDir scopes the tool run. It defaults to the directory of FilePath.
	WorkingDir string
	// Command replaces the configured argv when set.
	Command []string
	// Args are appended to the configured argv. Ignored when Command is set.
	Args []string
	// Env is merged over the configured environment.
	Env map[string]string
	// Buffer is the current editor contents. Nil means the saved file is current.
	Buffer []string
}

// Deps groups the collaborators of an App.
type Deps struct {
	Settings    domain.Settings
	Loader      ports.ConfigLoader
	Runner      ports.ProcessRunner
	Coordinator *coordinator.Coordinator
	Cache       *resultcache.Cache
	Store       ports.ResultStore
	Parser      ports.ReportParser
	Documents   ports.DocumentSource
	Notifier    *Notifier
	Logger      ports.Logger
	Metrics     ports.Metrics
	Tracer      ports.Tracer
	Clock       clockwork.Clock
}

// App answers analysis requests from the result cache or by running the tool.
type App struct {
	settings domain.Settings
	loader   ports.ConfigLoader
	runner   ports.ProcessRunner
	coord    *coordinator.Coordinator
	cache    *resultcache.Cache
	store    ports.ResultStore
	parser   ports.ReportParser
	docs     ports.DocumentSource
	notifier *Notifier
	logger   ports.Logger
	metrics  ports.Metrics
	tracer   ports.Tracer
	clock    clockwork.Clock

	persistMu sync.Mutex
}

// New creates a new App. A nil Clock means the real clock.
func New(deps Deps) *App {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		settings: deps.Settings,
		loader:   deps.Loader,
		runner:   deps.Runner,
		coord:    deps.Coordinator,
		cache:    deps.Cache,
		store:    deps.Store,
		parser:   deps.Parser,
		docs:     deps.Documents,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		tracer:   deps.Tracer,
		clock:    clock,
	}
}

// Restore fills the result cache from the persistent store.
func (a *App) Restore() error {
	entries, err := a.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to restore result cache")
	}
	a.cache.Restore(entries)
	return nil
}

// Analyze returns the issues of req.FilePath placed against the current buffer.
//
// A fresh cache entry is reused. An outdated entry is served without running
// the tool while the buffer has unsaved edits. Otherwise the tool is run
// through the coordinator, and concurrent requests for the same working
// directory share that run.
func (a *App) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Analysis, error) {
	if req.FilePath == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingArgument, "cannot analyze"), "argument", "file")
	}

	filePath, err := filepath.Abs(req.FilePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve file path")
	}
	workDir := req.WorkingDir
	if workDir == "" {
		workDir = filepath.Dir(filePath)
	}
	key := domain.NewWorkingDirectoryKey(workDir)

	ctx, span := a.tracer.Start(ctx, "app.analyze",
		ports.WithAttribute("linger.key", key.String()),
		ports.WithAttribute("linger.file", filePath),
	)
	defer span.End()

	analysis, err := a.analyze(ctx, key, filePath, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("linger.source", string(analysis.Source))
	return analysis, nil
}

func (a *App) analyze(
	ctx context.Context,
	key domain.WorkingDirectoryKey,
	filePath string,
	req AnalyzeRequest,
) (*domain.Analysis, error) {
	doc := document{path: filePath, workDir: key.String(), buffer: req.Buffer}

	fileMod := a.fileModTime(filePath)
	configMod := a.configModTime(key)

	previous, found := a.cache.Get(key)
	switch {
	case found && previous.FreshFor(fileMod, configMod):
		a.metrics.IncCacheLookup(ports.CacheHit)
		return a.present(&previous, domain.SourceCached, doc)
	case found:
		a.metrics.IncCacheLookup(ports.CacheStale)
		if a.isDirty(doc) {
			return a.present(&previous, domain.SourceStale, doc)
		}
	default:
		a.metrics.IncCacheLookup(ports.CacheMiss)
	}

	runReq := domain.RunRequest{
		Key:        key,
		Command:    a.command(req),
		WorkingDir: key.String(),
		Env:        a.environment(req.Env),
	}
	if err := a.runner.Check(runReq); err != nil {
		return nil, err
	}

	result, err := a.coord.Submit(ctx, runReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return a.fallback(key, err, previous, found, doc)
	}

	if !golangci.ExitCodeOK(result.ExitCode) {
		failure := zerr.With(zerr.Wrap(domain.ErrToolExecutionFailed, "golangci-lint run failed"), "exit_code", result.ExitCode)
		if stderr := excerpt(result.Stderr); stderr != "" {
			failure = zerr.With(failure, "stderr", stderr)
		}
		return a.fallback(key, failure, previous, found, doc)
	}

	report, err := a.parser.Parse(result.Stdout)
	if err != nil {
		a.logger.Warn("ignoring unreadable report for " + key.String())
		a.logger.Error(err)
		if found {
			return a.present(&previous, domain.SourceStale, doc)
		}
		return &domain.Analysis{Source: domain.SourceFresh, ProducedAt: result.StartedAt}, nil
	}

	// Every waiter of the run gets the same StartedAt, so only the first one
	// stores and persists. A save during the run leaves the entry stale.
	a.notifier.Reset(key)
	entry := domain.CacheEntry{
		ProducedAt: result.StartedAt,
		Issues:     report.Issues,
		Linters:    report.Report.Linters,
	}
	if a.cache.PutIfNewer(key, entry) {
		a.persist()
	}

	return a.present(&entry, domain.SourceFresh, doc)
}

// fallback reports a failed run and serves the previous entry when there is one.
func (a *App) fallback(
	key domain.WorkingDirectoryKey,
	failure error,
	previous domain.CacheEntry,
	found bool,
	doc document,
) (*domain.Analysis, error) {
	a.notifier.Notify(key, failure)
	if !found {
		return nil, failure
	}
	return a.present(&previous, domain.SourceStale, doc)
}

// document is the file an analysis is presented for.
type document struct {
	path    string
	workDir string
	buffer  []string
}

func (a *App) present(entry *domain.CacheEntry, source domain.AnalysisSource, doc document) (*domain.Analysis, error) {
	lines := doc.buffer
	if lines == nil {
		var err error
		lines, err = a.docs.ReadLines(doc.path)
		if err != nil {
			return nil, err
		}
	}

	result := reconcile.Reconcile(issuesForFile(entry.Issues, doc.workDir, doc.path), lines)
	if result.Dropped > 0 {
		a.metrics.AddDroppedIssues(result.Dropped)
	}

	return &domain.Analysis{
		Source:     source,
		ProducedAt: entry.ProducedAt,
		Placements: result.Placements,
		Linters:    entry.Linters,
		Dropped:    result.Dropped,
		Stopped:    result.Stopped,
	}, nil
}

// isDirty reports whether the request buffer differs from the saved file.
// An unreadable file counts as dirty.
func (a *App) isDirty(doc document) bool {
	if doc.buffer == nil {
		return false
	}
	modified, err := a.docs.IsModified(doc.path, doc.buffer)
	if err != nil {
		return true
	}
	return modified
}

// fileModTime returns the saved time of the document. An unreadable file is
// treated as saved now so that no cached entry counts as fresh for it.
func (a *App) fileModTime(path string) time.Time {
	modTime, err := a.docs.ModTime(path)
	if err != nil {
		return a.clock.Now()
	}
	return modTime
}

func (a *App) configModTime(key domain.WorkingDirectoryKey) time.Time {
	modTime, err := a.loader.ToolConfigModTime(key.String(), a.settings.ToolConfigNames)
	if err != nil {
		a.logger.Warn("cannot stat tool configuration: " + err.Error())
		return a.clock.Now()
	}
	return modTime
}

func (a *App) command(req AnalyzeRequest) []string {
	if len(req.Command) > 0 {
		return req.Command
	}
	return a.settings.Command(req.Args...)
}

func (a *App) environment(overrides map[string]string) map[string]string {
	env := make(map[string]string, len(a.settings.Env)+len(overrides))
	maps.Copy(env, a.settings.Env)
	maps.Copy(env, overrides)
	return env
}

// persist writes the cache to the store. Failures are logged, not returned.
func (a *App) persist() {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	if err := a.store.Save(a.cache.Entries()); err != nil {
		a.logger.Warn("results will not be shared with other processes")
		a.logger.Error(err)
	}
}

// issuesForFile keeps the issues reported for path. Report filenames are
// relative to the working directory unless absolute.
func issuesForFile(issues []domain.Issue, workDir, path string) []domain.Issue {
	var out []domain.Issue
	for i := range issues {
		name := issues[i].Pos.Filename
		if !filepath.IsAbs(name) {
			name = filepath.Join(workDir, name)
		}
		if filepath.Clean(name) == path {
			out = append(out, issues[i])
		}
	}
	return out
}

// excerpt trims stderr to at most maxStderrMetadata bytes without splitting a rune.
func excerpt(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if len(stderr) <= maxStderrMetadata {
		return stderr
	}
	cut := maxStderrMetadata
	for cut > 0 && !utf8.RuneStart(stderr[cut]) {
		cut--
	}
	return stderr[:cut] + "..."
}

// IsExecutableMissing reports whether err means the tool binary is unavailable.
func IsExecutableMissing(err error) bool {
	return errors.Is(err, domain.ErrExecutableNotFound)
}
