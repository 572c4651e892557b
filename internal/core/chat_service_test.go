package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carecam.com/patient-chat/internal/llm"
	"carecam.com/patient-chat/internal/records"
)

// Compile-time check that the fake satisfies the client interface.
var _ llm.Client = (*fakeLLMClient)(nil)

type fakeLLMClient struct {
	reply        string
	err          error
	systemPrompt string
	userMessage  string
	calls        int
}

func (f *fakeLLMClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.systemPrompt = systemPrompt
	f.userMessage = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLMClient) Close() {}

func writeRecordFixtures(t *testing.T, roomNumber string) string {
	t.Helper()
	dataDir := t.TempDir()
	rec := sampleRecord()

	infoDir := filepath.Join(dataDir, "patientinfo")
	timelineDir := filepath.Join(dataDir, "timelineinfo")
	require.NoError(t, os.MkdirAll(infoDir, 0o755))
	require.NoError(t, os.MkdirAll(timelineDir, 0o755))

	infoJSON, err := json.Marshal(rec.PatientInfo)
	require.NoError(t, err)
	timelineJSON, err := json.Marshal(rec.PatientTimeline)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(infoDir, "room"+roomNumber+".json"), infoJSON, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(timelineDir, "room"+roomNumber+".json"), timelineJSON, 0o644))
	return dataDir
}

func TestAnswer_PassesComposedPromptAndMessage(t *testing.T) {
	dataDir := writeRecordFixtures(t, "101")
	fake := &fakeLLMClient{reply: "The patient's danger level is Moderate."}
	svc := NewChatService(records.NewLoader(dataDir), fake, 5*time.Second)

	reply, err := svc.Answer(context.Background(), "101", "What is the patient's danger level?")
	require.NoError(t, err)

	assert.Equal(t, "The patient's danger level is Moderate.", reply)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "What is the patient's danger level?", fake.userMessage)
	assert.Contains(t, fake.systemPrompt, "Moderate")
	assert.Contains(t, fake.systemPrompt, "Dizziness")
	assert.Contains(t, fake.systemPrompt, "Jane Doe")
}

func TestAnswer_MissingRoomSkipsLLMCall(t *testing.T) {
	fake := &fakeLLMClient{reply: "unused"}
	svc := NewChatService(records.NewLoader(t.TempDir()), fake, 5*time.Second)

	_, err := svc.Answer(context.Background(), "999", "Anything?")

	var notFound *records.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, fake.calls, "LLM must not be called when records are missing")
}

func TestAnswer_UpstreamErrorPassesThrough(t *testing.T) {
	dataDir := writeRecordFixtures(t, "101")
	upstream := &llm.UpstreamError{Err: errors.New("401 unauthorized")}
	fake := &fakeLLMClient{err: upstream}
	svc := NewChatService(records.NewLoader(dataDir), fake, 5*time.Second)

	reply, err := svc.Answer(context.Background(), "101", "Anything?")

	assert.Empty(t, reply, "no partial response on failure")
	var got *llm.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Contains(t, err.Error(), "401 unauthorized")
}

func TestAnswer_AppliesDeadlineToLLMCall(t *testing.T) {
	dataDir := writeRecordFixtures(t, "101")
	fake := &fakeLLMClient{reply: "ok"}
	svc := NewChatService(records.NewLoader(dataDir), fake, 5*time.Second)

	deadlineSeen := false
	checker := &deadlineCheckingClient{inner: fake, sawDeadline: &deadlineSeen}
	svc.llmClient = checker

	_, err := svc.Answer(context.Background(), "101", "Anything?")
	require.NoError(t, err)
	assert.True(t, deadlineSeen, "LLM call must carry an explicit deadline")
}

type deadlineCheckingClient struct {
	inner       llm.Client
	sawDeadline *bool
}

func (c *deadlineCheckingClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if _, ok := ctx.Deadline(); ok {
		*c.sawDeadline = true
	}
	return c.inner.Chat(ctx, systemPrompt, userMessage)
}

func (c *deadlineCheckingClient) Close() {}
