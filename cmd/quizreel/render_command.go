package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizreel/internal/assets"
	"quizreel/internal/narrative"
	"quizreel/internal/notifications"
	"quizreel/internal/pipeline"
	"quizreel/internal/questions"
	"quizreel/internal/ratelimit"
	"quizreel/internal/services/groq"
	"quizreel/internal/services/renderer"
	"quizreel/internal/services/tts"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var sourceFlag string
	var compositionFlag string
	var voiceFlag string
	var short bool

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Generate assets and render one video per question",
		Long: `Loads the question list, prepares narrative, images and audio for every
question in order, then bundles the render project once and renders one video
per question. Any failure aborts the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Groq.APIKey) == "" {
				return errors.New("groq api_key is not configured (set it in config.toml or export GROQ_API_KEY)")
			}
			if strings.TrimSpace(cfg.TTS.APIKey) == "" {
				return errors.New("tts api_key is not configured (set it in config.toml or export GOOGLE_TTS_API_KEY)")
			}

			source := strings.TrimSpace(sourceFlag)
			if len(args) == 1 {
				source = strings.TrimSpace(args[0])
			}
			if source == "" {
				source, err = promptLine(cmd, "Question source (URL or file)")
				if err != nil {
					return err
				}
			}

			name := strings.TrimSpace(nameFlag)
			if name == "" {
				name, err = promptLine(cmd, "Quiz name")
				if err != nil {
					return err
				}
			}

			composition := strings.TrimSpace(compositionFlag)
			if composition == "" {
				composition = cfg.Render.Composition
				if short {
					composition = cfg.Render.ShortsComposition
				}
			}

			limiter := ratelimit.New(cfg.Groq.RequestsPerMinute, ratelimit.WithLogger(logger))
			generator := narrative.NewGenerator(
				groq.NewClient(groq.Config{
					APIKey:         cfg.Groq.APIKey,
					BaseURL:        cfg.Groq.BaseURL,
					Model:          cfg.Groq.Model,
					Temperature:    cfg.Groq.Temperature,
					MaxTokens:      cfg.Groq.MaxTokens,
					TimeoutSeconds: cfg.Groq.TimeoutSeconds,
				}),
				limiter,
				narrative.WithLogger(logger),
			)
			fetcher := assets.NewFetcher(
				tts.NewClient(tts.Config{
					APIKey:         cfg.TTS.APIKey,
					BaseURL:        cfg.TTS.BaseURL,
					LanguageCode:   cfg.TTS.LanguageCode,
					Voice:          cfg.TTS.Voice,
					SpeakingRate:   cfg.TTS.SpeakingRate,
					Pitch:          cfg.TTS.Pitch,
					TimeoutSeconds: cfg.TTS.TimeoutSeconds,
				}),
				assets.WithLogger(logger),
			)
			runner := renderer.NewCLI(
				renderer.WithBinary(cfg.Render.Binary),
				renderer.WithEntryPoint(cfg.Render.EntryPoint),
				renderer.WithPublicDir(cfg.Paths.AssetsDir),
			)

			p, err := pipeline.New(cfg.Paths.AssetsDir, cfg.Paths.VideosDir, pipeline.Deps{
				Source:    questions.NewSource(questions.WithLogger(logger)),
				Narrative: generator,
				Fetcher:   fetcher,
				Renderer:  runner,
				Notifier:  notifications.NewService(cfg),
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			result, err := p.Execute(cmd.Context(), pipeline.RunOptions{
				Name:        name,
				Source:      source,
				Composition: composition,
				Voice:       voiceFlag,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Quiz", "Questions", "Videos", "Duration"},
				[][]string{{
					result.Name,
					strconv.Itoa(result.Questions),
					strconv.Itoa(len(result.Videos)),
					result.Duration.Round(time.Second).String(),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Videos written to %s\n", result.VideoDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Quiz name (used to derive the output slug)")
	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Question source URL or file path")
	cmd.Flags().StringVar(&compositionFlag, "comp", "", "Composition ID to render")
	cmd.Flags().StringVar(&voiceFlag, "voice", "", "Text-to-speech voice override")
	cmd.Flags().BoolVar(&short, "short", false, "Render the vertical shorts composition")
	return cmd
}
