package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/willowmind/companion-backend/internal/apperr"
	"github.com/willowmind/companion-backend/internal/model/chat"
	"github.com/willowmind/companion-backend/pkg/utils"
)

const maxUploadBytes = 32 << 20

// Dispatcher routes one chat request to a reply.
type Dispatcher interface {
	Handle(ctx context.Context, req *chat.Request) (*chat.Reply, error)
}

// Handler serves the multipart chat endpoint.
type Handler struct {
	dispatcher Dispatcher
}

// New creates the chat handler.
func New(dispatcher Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req, err := parseRequest(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.dispatcher.Handle(r.Context(), req)
	if err != nil {
		respondDispatchError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

func parseRequest(r *http.Request) (*chat.Request, error) {
	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		userID = "default_user"
	}

	outputKind := strings.TrimSpace(r.FormValue("output_type"))
	if outputKind == "" {
		outputKind = chat.OutputText
	}

	req := &chat.Request{
		UserID:             userID,
		Text:               strings.TrimSpace(r.FormValue("text")),
		OutputKind:         outputKind,
		RestrictToDocument: formFlag(r, "restrict_scope"),
		MentalHealthMode:   formFlag(r, "mh_mode"),
		MoodTrend:          formFlag(r, "mood_trend"),
		Reminder:           formFlag(r, "schedule"),
	}

	for field, dest := range map[string]**chat.Attachment{
		"image":    &req.Image,
		"video":    &req.Video,
		"audio":    &req.Audio,
		"document": &req.Document,
	} {
		att, err := readAttachment(r, field)
		if err != nil {
			return nil, err
		}
		*dest = att
	}

	return req, nil
}

// formFlag treats the values the web client sends for checked boxes as
// true.
func formFlag(r *http.Request, field string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(field))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func readAttachment(r *http.Request, field string) (*chat.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("could not read uploaded file " + field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("could not read uploaded file " + field)
	}

	return &chat.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func respondDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNoInput),
		errors.Is(err, apperr.ErrUnsupportedFormat),
		errors.Is(err, apperr.ErrMissingDocument):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var capErr *apperr.CapabilityError
	if errors.As(err, &capErr) {
		log.Printf("[dispatch] capability failure: %v", capErr)
		utils.RespondError(w, http.StatusInternalServerError, capErr.Error())
		return
	}

	log.Printf("[dispatch] unexpected error: %v", err)
	utils.RespondError(w, http.StatusInternalServerError, "internal server error")
}
