package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perchhq/perch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDiscord records requests and serves canned responses.
type fakeDiscord struct {
	server   *httptest.Server
	requests []fakeRequest
}

type fakeRequest struct {
	method string
	path   string
	body   map[string]any
	auth   string
}

func newFakeDiscord(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeDiscord {
	t.Helper()
	f := &fakeDiscord{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := fakeRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req.body)
		}
		f.requests = append(f.requests, req)
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNotifier_PostStatusUpdate(t *testing.T) {
	fake := newFakeDiscord(t, func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]any{"id": "m1"})
	})
	n := NewNotifier("tok", "chan-1", fake.server.URL)

	err := n.PostStatusUpdate(context.Background(), domain.StatusUpdate{
		AgentName: "Ada",
		TaskTitle: "Design the schema",
		Status:    domain.UpdateStarted,
		Details:   "Sketching tables first",
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/channels/chan-1/messages", req.path)
	assert.Equal(t, "Bot tok", req.auth)
	content, _ := req.body["content"].(string)
	assert.Contains(t, content, "Ada")
	assert.Contains(t, content, "started working on")
	assert.Contains(t, content, "Design the schema")
	assert.Contains(t, content, "Sketching tables first")
}

func TestNotifier_PostStatusUpdate_PrefersThread(t *testing.T) {
	fake := newFakeDiscord(t, func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]any{"id": "m1"})
	})
	n := NewNotifier("tok", "chan-1", fake.server.URL)

	err := n.PostStatusUpdate(context.Background(), domain.StatusUpdate{
		AgentName: "Ada",
		TaskTitle: "Design the schema",
		Status:    domain.UpdateCompleted,
		ThreadID:  "thread-9",
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "/channels/thread-9/messages", fake.requests[0].path)
}

func TestNotifier_CreateThread(t *testing.T) {
	fake := newFakeDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/channels/chan-1/threads" {
			respondJSON(w, map[string]any{"id": "thread-7"})
			return
		}
		respondJSON(w, map[string]any{"id": "m1"})
	})
	n := NewNotifier("tok", "chan-1", fake.server.URL)

	threadID, err := n.CreateThread(context.Background(), "", "Task: fix the bug", "Work starts here")
	require.NoError(t, err)
	assert.Equal(t, "thread-7", threadID)

	require.Len(t, fake.requests, 2)
	assert.Equal(t, "/channels/chan-1/threads", fake.requests[0].path)
	assert.Equal(t, "/channels/thread-7/messages", fake.requests[1].path)
	assert.Equal(t, "Work starts here", fake.requests[1].body["content"])
}

func TestNotifier_SurfacesAPIErrors(t *testing.T) {
	fake := newFakeDiscord(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Missing Access"}`, http.StatusForbidden)
	})
	n := NewNotifier("tok", "chan-1", fake.server.URL)

	err := n.PostMessage(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNopNotifier(t *testing.T) {
	n := NopNotifier{}
	assert.NoError(t, n.PostMessage(context.Background(), "c", "text"))
	assert.NoError(t, n.PostStatusUpdate(context.Background(), domain.StatusUpdate{}))
	threadID, err := n.CreateThread(context.Background(), "c", "t", "m")
	assert.NoError(t, err)
	assert.Empty(t, threadID)
	assert.NoError(t, n.Close())
}
