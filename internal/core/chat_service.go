package core

import (
	"context"
	"time"

	"carecam.com/patient-chat/internal/llm"
	"carecam.com/patient-chat/internal/records"
)

// ChatService answers one question about one patient: load the room's
// records, compose the system prompt, ask the text-generation service.
// It keeps no state between requests; every Answer call works on a fresh
// request-scoped record.
type ChatService struct {
	loader     *records.Loader
	llmClient  llm.Client
	llmTimeout time.Duration
}

func NewChatService(loader *records.Loader, llmClient llm.Client, llmTimeout time.Duration) *ChatService {
	return &ChatService{
		loader:     loader,
		llmClient:  llmClient,
		llmTimeout: llmTimeout,
	}
}

// Answer returns the model's reply for a user question about the patient in
// the given room. Errors keep their type: *records.NotFoundError,
// *records.ValidationError and *llm.UpstreamError pass through untouched so
// the HTTP layer can map them to statuses.
func (s *ChatService) Answer(ctx context.Context, roomNumber, message string) (string, error) {
	rec, err := s.loader.Load(roomNumber)
	if err != nil {
		return "", err
	}

	systemPrompt := ComposePrompt(rec)

	// Outbound model calls get an explicit deadline; without one a stalled
	// upstream holds the request open indefinitely.
	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	return s.llmClient.Chat(llmCtx, systemPrompt, message)
}

// Record exposes the loader for callers that want the raw combined record
// (the room detail endpoint) with the same error taxonomy.
func (s *ChatService) Record(roomNumber string) (*records.CombinedPatientRecord, error) {
	return s.loader.Load(roomNumber)
}
