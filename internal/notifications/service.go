package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizreel/internal/config"
)

const userAgent = "Quizreel/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyRunStarted(ctx context.Context, quizName string, questionCount int) error
	NotifyAssetsComplete(ctx context.Context, quizName string, questionCount int) error
	NotifyRenderComplete(ctx context.Context, quizName string, videoCount int, duration time.Duration) error
	NotifyPublishComplete(ctx context.Context, title, videoURL string) error
	NotifyRunFailed(ctx context.Context, quizName string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, quizName string, questionCount int) error {
	quizName = strings.TrimSpace(quizName)
	data := payload{
		title:   "Quizreel - Run Started",
		message: fmt.Sprintf("Started generating %s (%d questions)", quizName, questionCount),
		tags:    []string{"quizreel", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAssetsComplete(ctx context.Context, quizName string, questionCount int) error {
	quizName = strings.TrimSpace(quizName)
	data := payload{
		title:   "Quizreel - Assets Ready",
		message: fmt.Sprintf("Assets complete for %s: %d questions ready to render", quizName, questionCount),
		tags:    []string{"quizreel", "assets", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderComplete(ctx context.Context, quizName string, videoCount int, duration time.Duration) error {
	quizName = strings.TrimSpace(quizName)
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title:    "Quizreel - Render Complete",
		message:  fmt.Sprintf("Rendered %d videos for %s in %s", videoCount, quizName, duration),
		tags:     []string{"quizreel", "render", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPublishComplete(ctx context.Context, title, videoURL string) error {
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("Published: %s", title)
	if videoURL = strings.TrimSpace(videoURL); videoURL != "" {
		message = fmt.Sprintf("%s\n%s", message, videoURL)
	}
	data := payload{
		title:   "Quizreel - Published",
		message: message,
		tags:    []string{"quizreel", "publish", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, quizName string, err error) error {
	var builder strings.Builder
	builder.WriteString("Run failed")
	if quizName = strings.TrimSpace(quizName); quizName != "" {
		builder.WriteString(" for ")
		builder.WriteString(quizName)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Quizreel - Error",
		message:  builder.String(),
		tags:     []string{"quizreel", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Quizreel - Test",
		message:  "Notification system test",
		tags:     []string{"quizreel", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string, int) error { return nil }
func (noopService) NotifyAssetsComplete(context.Context, string, int) error {
	return nil
}
func (noopService) NotifyRenderComplete(context.Context, string, int, time.Duration) error {
	return nil
}
func (noopService) NotifyPublishComplete(context.Context, string, string) error { return nil }
func (noopService) NotifyRunFailed(context.Context, string, error) error        { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
