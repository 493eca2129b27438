package chat

import (
	"context"
	"fmt"
	"strings"

	moodscore "github.com/willowmind/companion-backend/internal/analysis/mood"
	"github.com/willowmind/companion-backend/internal/apperr"
	"github.com/willowmind/companion-backend/internal/chart"
	"github.com/willowmind/companion-backend/internal/model/chat"
	"github.com/willowmind/companion-backend/internal/model/mood"
	"github.com/willowmind/companion-backend/internal/service/ai"
	"github.com/willowmind/companion-backend/internal/service/scheduler"
)

// ChatModel is the language-model capability the dispatcher relies on.
type ChatModel interface {
	Complete(ctx context.Context, systemPrompt, userText string, maxTokens int) (string, error)
	CompleteVision(ctx context.Context, promptText string, image *chat.Attachment, maxTokens int) (string, error)
}

// TrendChart draws a mood history chart and returns the artifact path.
type TrendChart interface {
	Render(points []chart.Point) (string, error)
}

// ReminderBook records scheduling requests.
type ReminderBook interface {
	Add(userID, text string) scheduler.Reminder
}

const (
	chatMaxTokens   = 150
	visionMaxTokens = 300
)

// Dispatcher routes a chat request through the mode guards and, when none
// applies, the modality pipeline: resolve one input, complete, render.
type Dispatcher struct {
	llm       ChatModel
	extractor *Extractor
	renderer  *Renderer
	moods     mood.Store
	reminders ReminderBook
	trends    TrendChart
	detect    func(string) string
}

// NewDispatcher wires the dispatcher's collaborators.
func NewDispatcher(llm ChatModel, extractor *Extractor, renderer *Renderer, moods mood.Store, reminders ReminderBook, trends TrendChart, detect func(string) string) *Dispatcher {
	return &Dispatcher{
		llm:       llm,
		extractor: extractor,
		renderer:  renderer,
		moods:     moods,
		reminders: reminders,
		trends:    trends,
		detect:    detect,
	}
}

// Handle processes one chat request. Guard order: mental-health mode,
// mood trend, reminder, restrict-scope without a document, then the
// modality pipeline.
func (d *Dispatcher) Handle(ctx context.Context, req *chat.Request) (*chat.Reply, error) {
	text := strings.TrimSpace(req.Text)

	if req.MentalHealthMode && text != "" {
		return d.handleMentalHealth(ctx, req.UserID, text)
	}

	if req.MoodTrend {
		return d.handleMoodTrend(req.UserID)
	}

	if req.Reminder && text != "" {
		reminder := d.reminders.Add(req.UserID, text)
		return &chat.Reply{Text: fmt.Sprintf("⏰ Reminder saved: %s", reminder.Text)}, nil
	}

	if req.RestrictToDocument && req.Document == nil {
		return nil, apperr.ErrMissingDocument
	}

	input, err := d.extractor.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	if input.IsVision() {
		replyText, err := d.llm.CompleteVision(ctx, input.Text, input.Image, visionMaxTokens)
		if err != nil {
			return nil, apperr.Capability("chat completion", err)
		}
		return d.renderer.Render(ctx, replyText, req.OutputKind, replyText)
	}

	systemPrompt := ai.MultilingualSystemPrompt
	userText := input.Text
	if req.RestrictToDocument {
		systemPrompt = ai.DocumentSystemPrompt(input.Text)
		if text != "" {
			userText = text
		}
	}

	replyText, err := d.llm.Complete(ctx, systemPrompt, userText, chatMaxTokens)
	if err != nil {
		return nil, apperr.Capability("chat completion", err)
	}
	return d.renderer.Render(ctx, replyText, req.OutputKind, input.Text)
}

// handleMentalHealth logs the mood, then asks for a coaching suggestion
// and a companion reply, stitching the three sections together.
func (d *Dispatcher) handleMentalHealth(ctx context.Context, userID, moodText string) (*chat.Reply, error) {
	if _, err := d.moods.Append(userID, moodText); err != nil {
		return nil, err
	}
	confirmation := fmt.Sprintf("✅ Logged mood: %s", moodText)

	suggestion, err := d.llm.Complete(ctx, ai.CoachSystemPrompt, moodText, chatMaxTokens)
	if err != nil {
		return nil, apperr.Capability("chat completion", err)
	}
	companion, err := d.llm.Complete(ctx, ai.CompanionSystemPrompt, moodText, chatMaxTokens)
	if err != nil {
		return nil, apperr.Capability("chat completion", err)
	}

	replyText := fmt.Sprintf("[MoodTracker]\n%s\n\n[Suggestion]\n%s\n\n[Companion]\n%s",
		confirmation, suggestion, companion)
	return &chat.Reply{Text: replyText, Language: d.detect(replyText)}, nil
}

// handleMoodTrend charts the user's mood history and summarizes it as
// one line per entry.
func (d *Dispatcher) handleMoodTrend(userID string) (*chat.Reply, error) {
	entries, err := d.moods.History(userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &chat.Reply{Text: "No mood history found."}, nil
	}

	points := make([]chart.Point, 0, len(entries))
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		day := entry.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}
		points = append(points, chart.Point{Label: day, Value: moodscore.Score(entry.Mood)})
		lines = append(lines, fmt.Sprintf("%s: %s", day, entry.Mood))
	}

	chartPath, err := d.trends.Render(points)
	if err != nil {
		return nil, apperr.Capability("chart rendering", err)
	}

	return &chat.Reply{
		Text:     "📊 Your mood history:\n" + strings.Join(lines, "\n"),
		ImageURL: chartPath,
	}, nil
}
