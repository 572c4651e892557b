package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carecam.com/patient-chat/internal/core"
	"carecam.com/patient-chat/internal/llm"
	"carecam.com/patient-chat/internal/records"
)

type APIHandler struct {
	chatService *core.ChatService
}

func NewAPIHandler(cs *core.ChatService) *APIHandler {
	return &APIHandler{chatService: cs}
}

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestIDMiddleware tags every request with a UUID, echoed in the
// X-Request-Id header and in error payloads so failures can be correlated
// with server logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

type errorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Detail: detail, RequestID: requestID(r)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RootHandler confirms the service is running.
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient Chat API is running"})
}

type ChatRequest struct {
	RoomNumber string `json:"room_number"`
	Message    string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler answers a user question about the patient in a room. Status
// mapping: 404 when a backing file is missing (the message names which one),
// 500 for schema violations, upstream failures and anything unexpected.
func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.RoomNumber == "" {
		writeError(w, r, http.StatusBadRequest, "room_number is required")
		return
	}
	if req.Message == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chatService.Answer(r.Context(), req.RoomNumber, req.Message)
	if err != nil {
		h.writeChatError(w, r, req.RoomNumber, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

// RoomRecordHandler returns the raw combined record for a room, for
// dashboard consumers that render patient details directly.
func (h *APIHandler) RoomRecordHandler(w http.ResponseWriter, r *http.Request) {
	roomNumber := chi.URLParam(r, "roomNumber")
	rec, err := h.chatService.Record(roomNumber)
	if err != nil {
		h.writeChatError(w, r, roomNumber, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeChatError translates the error taxonomy into HTTP statuses in one
// place. NotFound is the only client-correctable case; everything else is a
// server-side failure with the underlying cause attached.
func (h *APIHandler) writeChatError(w http.ResponseWriter, r *http.Request, roomNumber string, err error) {
	var notFound *records.NotFoundError
	var validation *records.ValidationError
	var upstream *llm.UpstreamError

	switch {
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		log.Printf("Validation failure for room %s (request %s): %v", roomNumber, requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "Error loading patient data: "+validation.Error())
	case errors.As(err, &upstream):
		log.Printf("Upstream failure for room %s (request %s): %v", roomNumber, requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "Error querying the AI model: "+upstream.Error())
	default:
		log.Printf("Unexpected failure for room %s (request %s): %v", roomNumber, requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
