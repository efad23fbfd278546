package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizreel/internal/services"
	"quizreel/internal/services/ffmpeg"
	"quizreel/internal/textutil"
)

func newJoinCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var matteFlag string

	cmd := &cobra.Command{
		Use:   "join <quiz-name>",
		Short: "Concatenate rendered question videos into one final video",
		Long: `Finds question-N.mp4 files (plus intro.mp4/outro.mp4 when present) in the
quiz's video directory and joins them in order. When a luma matte video is
configured, each cut is covered by the matte transition.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			slug := textutil.Slugify(args[0])
			videoDir := filepath.Join(cfg.Paths.VideosDir, slug)
			clips, err := ffmpeg.DiscoverClips(videoDir)
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = filepath.Join(videoDir, slug+"-full.mp4")
			}

			matte := strings.TrimSpace(matteFlag)
			if matte == "" {
				matte = cfg.Join.MattePath
			}
			if matte != "" {
				if _, statErr := os.Stat(matte); statErr != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Matte %s not found, joining with hard cuts\n", matte)
					matte = ""
				}
			}

			client := ffmpeg.NewClient(ffmpeg.WithBinary(cfg.Join.FFmpegBinary))
			fmt.Fprintf(cmd.OutOrStdout(), "Joining %d clips from %s\n", len(clips), videoDir)
			if err := client.Join(cmd.Context(), ffmpeg.JoinRequest{
				Clips:      clips,
				OutputPath: output,
				MattePath:  matte,
				Transition: time.Duration(cfg.Join.TransitionSeconds * float64(time.Second)),
			}); err != nil {
				return services.Wrap(services.ErrExternalTool, "join", "ffmpeg", slug, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Final video written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (default <videos>/<slug>/<slug>-full.mp4)")
	cmd.Flags().StringVar(&matteFlag, "matte", "", "Luma matte video for transitions")
	return cmd
}
