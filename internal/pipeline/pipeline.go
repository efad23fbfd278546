// Package pipeline drives a quiz run end to end: load questions, prepare
// every question's assets in order, then bundle the render project once and
// render one video per question. Any failure aborts the whole run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"quizreel/internal/assets"
	"quizreel/internal/logging"
	"quizreel/internal/narrative"
	"quizreel/internal/notifications"
	"quizreel/internal/questions"
	"quizreel/internal/services"
	"quizreel/internal/services/renderer"
	"quizreel/internal/textutil"
)

// QuestionLoader resolves a source specifier to an ordered question list.
type QuestionLoader interface {
	Load(ctx context.Context, specifier string) ([]questions.Question, error)
}

// NarrativeGenerator produces the spoken pair for one question.
type NarrativeGenerator interface {
	Generate(ctx context.Context, questionText, correctAnswer string) (narrative.Pair, error)
}

// AssetFetcher performs the two per-question media operations.
type AssetFetcher interface {
	DownloadImage(ctx context.Context, imageURL, destination string) error
	SynthesizeSpeech(ctx context.Context, text, destination, voice string) error
}

// Deps collects the pipeline's collaborators.
type Deps struct {
	Source    QuestionLoader
	Narrative NarrativeGenerator
	Fetcher   AssetFetcher
	Renderer  renderer.Service
	Notifier  notifications.Service
	Logger    *slog.Logger
}

// Pipeline orchestrates one run at a time.
type Pipeline struct {
	source     QuestionLoader
	narrative  NarrativeGenerator
	fetcher    AssetFetcher
	renderer   renderer.Service
	notifier   notifications.Service
	logger     *slog.Logger
	assetsRoot string
	videosRoot string

	phase Phase
}

// New validates the dependency set and constructs a pipeline.
func New(assetsRoot, videosRoot string, deps Deps) (*Pipeline, error) {
	if strings.TrimSpace(assetsRoot) == "" || strings.TrimSpace(videosRoot) == "" {
		return nil, errors.New("pipeline: assets and videos directories required")
	}
	if deps.Source == nil || deps.Narrative == nil || deps.Fetcher == nil || deps.Renderer == nil {
		return nil, errors.New("pipeline: source, narrative, fetcher and renderer are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		source:     deps.Source,
		narrative:  deps.Narrative,
		fetcher:    deps.Fetcher,
		renderer:   deps.Renderer,
		notifier:   deps.Notifier,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		assetsRoot: assetsRoot,
		videosRoot: videosRoot,
		phase:      PhaseLoading,
	}, nil
}

// RunOptions names one run's inputs. Composition and Voice fall through to
// the collaborators' defaults when empty.
type RunOptions struct {
	Name        string
	Source      string
	Composition string
	Voice       string
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Name      string
	Slug      string
	Questions int
	AssetDir  string
	VideoDir  string
	Videos    []string
	Duration  time.Duration
}

// Phase reports the run's current phase.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

func (p *Pipeline) setPhase(ctx context.Context, phase Phase) {
	p.phase = phase
	p.logger.LogAttrs(ctx, slog.LevelInfo, "phase transition", logging.String("phase", phase.String()))
}

// Execute performs one full run. Phase 1 prepares assets for every question
// in input order; only after all of them exist is the render project bundled
// and each question rendered. Failures are terminal: the run stops where it
// is, leaving completed artifacts on disk.
func (p *Pipeline) Execute(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, services.Wrap(services.ErrInput, "pipeline", "run", "quiz name required", nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	slug := textutil.Slugify(name)
	result := &Result{
		RunID:    runID,
		Name:     name,
		Slug:     slug,
		AssetDir: filepath.Join(p.assetsRoot, slug),
		VideoDir: filepath.Join(p.videosRoot, slug),
	}

	err := p.execute(ctx, opts, result)
	result.Duration = time.Since(start)
	if err != nil {
		p.setPhase(ctx, PhaseFailed)
		p.logger.LogAttrs(ctx, slog.LevelError, "run failed",
			logging.String("run_id", runID),
			logging.String("kind", services.Kind(err)),
			logging.Error(err))
		p.notifyFailed(ctx, name, err)
		return nil, err
	}

	p.setPhase(ctx, PhaseDone)
	p.logger.LogAttrs(ctx, slog.LevelInfo, "run complete",
		logging.String("run_id", runID),
		logging.Int("videos", len(result.Videos)),
		logging.Duration("duration", result.Duration))
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, opts RunOptions, result *Result) error {
	p.setPhase(ctx, PhaseLoading)
	list, err := p.source.Load(services.WithStage(ctx, "loading"), opts.Source)
	if err != nil {
		return err
	}
	result.Questions = len(list)

	for _, dir := range []string{result.AssetDir, result.VideoDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrConfiguration, "pipeline", "run", "create output directory", err)
		}
	}

	lock := flock.New(filepath.Join(result.VideoDir, ".quizreel.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "run", "acquire quiz lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrConfiguration, "pipeline", "run",
			fmt.Sprintf("another run is already writing %s", result.Slug), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	p.notifyStarted(ctx, result.Name, result.Questions)

	sets, err := p.prepareAssets(ctx, opts, list, result)
	if err != nil {
		return err
	}
	p.notifyAssetsComplete(ctx, result.Name, result.Questions)

	renderStart := time.Now()
	if err := p.renderAll(ctx, opts, list, sets, result); err != nil {
		return err
	}
	p.notifyRenderComplete(ctx, result.Name, len(result.Videos), time.Since(renderStart))
	return nil
}

// prepareAssets is phase 1: for each question in order, narrative first,
// then both images, then both audio clips. Strictly sequential; the first
// failure aborts. The narrative pair is consumed here by speech synthesis.
func (p *Pipeline) prepareAssets(ctx context.Context, opts RunOptions, list []questions.Question, result *Result) ([]assets.Set, error) {
	p.setPhase(ctx, PhaseAssets)

	sets := make([]assets.Set, 0, len(list))
	for i, q := range list {
		ordinal := i + 1
		qctx := services.WithQuestion(services.WithStage(ctx, "assets"), ordinal)
		p.logger.LogAttrs(qctx, slog.LevelInfo, "preparing question assets",
			logging.Int("question", ordinal),
			logging.Int("total", len(list)))

		pair, err := p.narrative.Generate(qctx, q.Question, q.CorrectAnswer())
		if err != nil {
			return nil, err
		}

		set := assets.NewSet(p.assetsRoot, result.Slug, ordinal)
		if err := p.fetcher.DownloadImage(qctx, q.QuestionImage, set.QuestionImage()); err != nil {
			return nil, err
		}
		if err := p.fetcher.DownloadImage(qctx, q.AnswerImage, set.AnswerImage()); err != nil {
			return nil, err
		}
		if err := p.fetcher.SynthesizeSpeech(qctx, pair.Question, set.QuestionAudio(), opts.Voice); err != nil {
			return nil, err
		}
		if err := p.fetcher.SynthesizeSpeech(qctx, pair.Answer, set.AnswerAudio(), opts.Voice); err != nil {
			return nil, err
		}

		sets = append(sets, set)
	}
	return sets, nil
}

// renderAll is phase 2: bundle once, then render each question against the
// same serve location.
func (p *Pipeline) renderAll(ctx context.Context, opts RunOptions, list []questions.Question, sets []assets.Set, result *Result) error {
	p.setPhase(ctx, PhaseRender)
	rctx := services.WithStage(ctx, "render")

	serveURL, err := p.renderer.Bundle(rctx)
	if err != nil {
		return services.Wrap(services.ErrRender, "pipeline", "bundle", "bundle render project", err)
	}
	p.logger.LogAttrs(rctx, slog.LevelInfo, "render project bundled", logging.String("serve_url", serveURL))

	for i, q := range list {
		ordinal := i + 1
		qctx := services.WithQuestion(rctx, ordinal)
		props := buildProps(ordinal, q, sets[i])

		comp, err := p.renderer.SelectComposition(qctx, serveURL, opts.Composition, props)
		if err != nil {
			return services.Wrap(services.ErrRender, "pipeline", "select-composition",
				fmt.Sprintf("question %d", ordinal), err)
		}

		outputPath := filepath.Join(result.VideoDir, fmt.Sprintf("question-%d.mp4", ordinal))
		p.logger.LogAttrs(qctx, slog.LevelInfo, "rendering question",
			logging.Int("question", ordinal),
			logging.String("composition", comp.ID),
			logging.String("output", outputPath))

		progress := func(update renderer.ProgressUpdate) {
			p.logger.LogAttrs(qctx, slog.LevelDebug, "render progress",
				logging.Int("question", ordinal),
				logging.Float64("percent", update.Percent))
		}
		if err := p.renderer.Render(qctx, comp, serveURL, outputPath, props, progress); err != nil {
			return services.Wrap(services.ErrRender, "pipeline", "render",
				fmt.Sprintf("question %d", ordinal), err)
		}
		result.Videos = append(result.Videos, outputPath)
	}
	return nil
}

func (p *Pipeline) notifyStarted(ctx context.Context, name string, count int) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyRunStarted(ctx, name, count); err != nil {
		p.logger.Warn("notification failed", logging.Error(err))
	}
}

func (p *Pipeline) notifyAssetsComplete(ctx context.Context, name string, count int) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyAssetsComplete(ctx, name, count); err != nil {
		p.logger.Warn("notification failed", logging.Error(err))
	}
}

func (p *Pipeline) notifyRenderComplete(ctx context.Context, name string, videos int, elapsed time.Duration) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyRenderComplete(ctx, name, videos, elapsed); err != nil {
		p.logger.Warn("notification failed", logging.Error(err))
	}
}

func (p *Pipeline) notifyFailed(ctx context.Context, name string, runErr error) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyRunFailed(ctx, name, runErr); err != nil {
		p.logger.Warn("notification failed", logging.Error(err))
	}
}
