package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"replygen/app/config"
	"replygen/app/model"
	"replygen/app/service/completion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	got   model.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req model.GenerateRequest) (string, error) {
	f.got = req
	return f.reply, f.err
}

func post(t *testing.T, s *Service, body string) (int, model.GenerateResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out model.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

func testConfig() *config.Config {
	return &config.Config{Server: config.Server{Addr: "127.0.0.1:0"}}
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "¡Hola! 😘"}
	s := NewService(testConfig(), gen)

	status, resp := post(t, s, `{"message":"hola","tone":"filosófica","intensity":"alta"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "¡Hola! 😘", resp.Reply)
	assert.Equal(t, model.GenerateRequest{
		Message:   "hola",
		Tone:      model.ToneFilosofica,
		Intensity: model.IntensityAlta,
	}, gen.got)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"generator error", `{"message":"hola","tone":"coqueta","intensity":"media"}`, errors.New("boom"), http.StatusInternalServerError},
		{"malformed json", `{"message":`, nil, http.StatusInternalServerError},
		{"unknown tone", `{"message":"hola","tone":"romántica","intensity":"media"}`, nil, http.StatusBadRequest},
		{"unknown intensity", `{"message":"hola","tone":"coqueta","intensity":"máxima"}`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(testConfig(), &fakeGenerator{err: tt.err})

			status, resp := post(t, s, tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, completion.FailureReply, resp.Reply)
		})
	}
}

func TestHealth(t *testing.T) {
	s := NewService(testConfig(), &fakeGenerator{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestCORS(t *testing.T) {
	s := NewService(testConfig(), &fakeGenerator{})

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := &config.Config{Server: config.Server{Addr: addr}}
	s := NewService(cfg, &fakeGenerator{reply: "ok"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}
