package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizor98/albertonet-sub000/internal/contact"
)

func TestFunctionMessenger_PostsMessage(t *testing.T) {
	var received contact.Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	msg := contact.Message{
		Name:      "Alice",
		Email:     "alice@example.com",
		Message:   "A long enough message.",
		IsCompany: true,
	}

	m := contact.NewFunctionMessenger(server.URL, time.Second)
	require.NoError(t, m.SendContactNotification(context.Background(), msg))
	assert.Equal(t, msg, received)
}

func TestFunctionMessenger_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := contact.NewFunctionMessenger(server.URL, time.Second)
	err := m.SendContactNotification(context.Background(), contact.Message{})
	assert.ErrorContains(t, err, "status 500")
}

func TestFunctionMessenger_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	m := contact.NewFunctionMessenger(server.URL, time.Second)
	err := m.SendContactNotification(ctx, contact.Message{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogMessenger(t *testing.T) {
	err := contact.LogMessenger{}.SendContactNotification(context.Background(), contact.Message{Name: "x"})
	assert.NoError(t, err)
}
