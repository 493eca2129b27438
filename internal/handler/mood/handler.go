package mood

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	moodscore "github.com/willowmind/companion-backend/internal/analysis/mood"
	"github.com/willowmind/companion-backend/internal/chart"
	"github.com/willowmind/companion-backend/internal/model/mood"
	"github.com/willowmind/companion-backend/pkg/utils"
)

// TrendChart draws a mood history chart and returns the artifact path.
type TrendChart interface {
	Render(points []chart.Point) (string, error)
}

// Handler serves the mood journal endpoints.
type Handler struct {
	store  mood.Store
	trends TrendChart
}

// New creates the mood handler.
func New(store mood.Store, trends TrendChart) *Handler {
	return &Handler{store: store, trends: trends}
}

// RegisterRoutes registers the mood routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mood", h.handleLogMood)
	r.Get("/mood/history", h.handleHistory)
	r.Get("/mood/trend", h.handleTrend)
}

func (h *Handler) handleLogMood(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		Mood   string `json:"mood"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Mood = strings.TrimSpace(payload.Mood)
	if payload.UserID == "" || payload.Mood == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId and mood are required")
		return
	}

	entry, err := h.store.Append(payload.UserID, payload.Mood)
	if err != nil {
		log.Printf("[mood] append failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "could not store mood entry")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	entries, err := h.store.History(userID)
	if err != nil {
		log.Printf("[mood] history failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "could not read mood history")
		return
	}
	if entries == nil {
		entries = []mood.Entry{}
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	entries, err := h.store.History(userID)
	if err != nil {
		log.Printf("[mood] history failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "could not read mood history")
		return
	}
	if len(entries) == 0 {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"response": "No mood history found."})
		return
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

	chartPath, err := h.trends.Render(points)
	if err != nil {
		log.Printf("[mood] chart render failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "could not render trend chart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response":  "📊 Your mood history:\n" + strings.Join(lines, "\n"),
		"image_url": chartPath,
	})
}
