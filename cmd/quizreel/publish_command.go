package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quizreel/internal/config"
	"quizreel/internal/notifications"
	"quizreel/internal/services/youtube"
	"quizreel/internal/textutil"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	var titleFlag string
	var descriptionFlag string
	var tagsFlag []string
	var authCodeFlag string

	cmd := &cobra.Command{
		Use:   "publish <video-path>",
		Short: "Upload a final video to YouTube",
		Long: `Uploads a video through the YouTube Data API using the OAuth token stored in
the configured token file. On first use, visit the printed consent URL and
supply the authorization code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.YouTube.ClientID) == "" || strings.TrimSpace(cfg.YouTube.ClientSecret) == "" {
				return fmt.Errorf("youtube client_id and client_secret are not configured")
			}

			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(videoPath); err != nil {
				return fmt.Errorf("video file: %w", err)
			}

			tokenFile, err := config.ExpandPath(cfg.YouTube.TokenFile)
			if err != nil {
				return err
			}
			client := youtube.NewClient(youtube.Config{
				ClientID:     cfg.YouTube.ClientID,
				ClientSecret: cfg.YouTube.ClientSecret,
				TokenFile:    tokenFile,
				CategoryID:   cfg.YouTube.CategoryID,
				Privacy:      cfg.YouTube.Privacy,
			})

			if err := ensureAuthorized(cmd, client, authCodeFlag); err != nil {
				return err
			}

			title := strings.TrimSpace(titleFlag)
			if title == "" {
				title = textutil.TitleFromSlug(strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath)))
			}
			description := strings.TrimSpace(descriptionFlag)
			if description == "" {
				description = "Test your knowledge with this quiz!"
			}
			tags := tagsFlag
			if len(tags) == 0 {
				tags = []string{"quiz", "trivia", "knowledge", "education"}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploading %s (%s)\n", videoPath, title)
			video, err := client.Upload(cmd.Context(), youtube.UploadRequest{
				Path:        videoPath,
				Title:       title,
				Description: description,
				Tags:        tags,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Upload complete: %s\n", video.URL)
			notifier := notifications.NewService(cfg)
			if err := notifier.NotifyPublishComplete(cmd.Context(), title, video.URL); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "notification failed: %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Video title (default derived from the file name)")
	cmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Video description")
	cmd.Flags().StringSliceVar(&tagsFlag, "tag", nil, "Video tag (repeatable)")
	cmd.Flags().StringVar(&authCodeFlag, "auth-code", "", "OAuth authorization code for first-time setup")
	return cmd
}

// ensureAuthorized obtains a stored token, exchanging an authorization code
// when one is needed. Interactive consent requires a terminal.
func ensureAuthorized(cmd *cobra.Command, client *youtube.Client, authCode string) error {
	if client.HasToken() && strings.TrimSpace(authCode) == "" {
		return nil
	}

	code := strings.TrimSpace(authCode)
	if code == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Authorize uploads by visiting:\n\n  %s\n\n", client.AuthURL())
		var err error
		code, err = promptLine(cmd, "Authorization code")
		if err != nil {
			return err
		}
	}
	if err := client.Authenticate(cmd.Context(), code); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Authorization saved")
	return nil
}
