package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"replygen/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL + "/")
}

func TestGenerate_Success(t *testing.T) {
	var got model.GenerateRequest

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"¡Hola! 😘"}`))
	})

	reply, err := client.Generate(context.Background(), model.GenerateRequest{
		Message:   "hola",
		Tone:      model.ToneFilosofica,
		Intensity: model.IntensityMedia,
	})
	require.NoError(t, err)

	assert.Equal(t, "¡Hola! 😘", reply)
	assert.Equal(t, model.GenerateRequest{
		Message:   "hola",
		Tone:      model.ToneFilosofica,
		Intensity: model.IntensityMedia,
	}, got)
}

func TestGenerate_EmptyReplyIsValid(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reply":""}`))
	})

	reply, err := client.Generate(context.Background(), model.GenerateRequest{Message: "x"})
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server error", http.StatusInternalServerError, `{"reply":"Error al generar la respuesta."}`, "unexpected status 500"},
		{"bad request", http.StatusBadRequest, `{"reply":"x"}`, "unexpected status 400"},
		{"malformed body", http.StatusOK, `not json`, "failed to decode response"},
		{"missing reply", http.StatusOK, `{"text":"hola"}`, "response has no reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), model.GenerateRequest{Message: "hola"})
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Generate(context.Background(), model.GenerateRequest{Message: "hola"})
	assert.ErrorContains(t, err, "request failed")
}

func TestGenerate_ContextDeadline(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"reply":"tarde"}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, model.GenerateRequest{Message: "hola"})
	assert.Error(t, err)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("http://127.0.0.1:1").Generate(ctx, model.GenerateRequest{Message: "hola"})
	assert.ErrorIs(t, err, context.Canceled)
}
