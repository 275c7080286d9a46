package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"undisorder/internal/config"
)

const userAgent = "undisorder"

// ImportReport is the outcome of one import run.
type ImportReport struct {
	Source        string
	DryRun        bool
	Imported      int
	Updated       int
	Skipped       int
	Duplicates    int
	FailedBatches int
	FailureLog    string
	Duration      time.Duration
}

// Service defines the notification surface used by the CLI.
type Service interface {
	NotifyImportCompleted(ctx context.Context, report ImportReport) error
	NotifyError(ctx context.Context, err error, context string) error
}

// NewService builds a notification service backed by ntfy when a topic is
// configured, and a no-op service otherwise.
func NewService(cfg config.Notifications) Service {
	topic := strings.TrimSpace(cfg.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
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

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, report ImportReport) error {
	duration := report.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var message strings.Builder
	fmt.Fprintf(&message, "%s: %d imported, %d updated, %d skipped, %d duplicates in %s",
		report.Source, report.Imported, report.Updated, report.Skipped, report.Duplicates, duration)

	data := payload{
		title: "undisorder - Import Complete",
		tags:  []string{"undisorder", "import", "completed"},
	}
	if report.DryRun {
		data.title = "undisorder - Dry Run Complete"
		data.tags = []string{"undisorder", "import", "dry-run"}
	}
	if report.FailedBatches > 0 {
		data.title += " (with errors)"
		data.priority = "high"
		fmt.Fprintf(&message, "\n%d batch(es) failed", report.FailedBatches)
		if report.FailureLog != "" {
			fmt.Fprintf(&message, "; see %s", report.FailureLog)
		}
	}
	data.message = message.String()
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "undisorder - Error",
		message:  builder.String(),
		tags:     []string{"undisorder", "error", "alert"},
		priority: "high",
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

func (noopService) NotifyImportCompleted(context.Context, ImportReport) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error          { return nil }
