package mcpserver

import (
	"context"
	"errors"
	"testing"

	"replygen/app/model"
	"replygen/app/service/completion"

	"github.com/mark3labs/mcp-go/mcp"
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

func call(t *testing.T, s *Service, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{}
	request.Params.Name = toolName
	request.Params.Arguments = args

	result, err := s.handleGenerate(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	return content.Text
}

func TestGenerateTool_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "¡Hola! 😘"}
	s := NewService(gen)

	result := call(t, s, map[string]any{
		"message":   "hola",
		"tone":      "misteriosa",
		"intensity": "baja",
	})

	assert.False(t, result.IsError)
	assert.Equal(t, "¡Hola! 😘", text(t, result))
	assert.Equal(t, model.GenerateRequest{
		Message:   "hola",
		Tone:      model.ToneMisteriosa,
		Intensity: model.IntensityBaja,
	}, gen.got)
}

func TestGenerateTool_Defaults(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	s := NewService(gen)

	result := call(t, s, map[string]any{"message": "hola"})

	assert.False(t, result.IsError)
	assert.Equal(t, model.DefaultTone, gen.got.Tone)
	assert.Equal(t, model.DefaultIntensity, gen.got.Intensity)
}

func TestGenerateTool_Errors(t *testing.T) {
	t.Run("missing message", func(t *testing.T) {
		result := call(t, NewService(&fakeGenerator{}), map[string]any{})
		assert.True(t, result.IsError)
	})

	t.Run("unknown tone", func(t *testing.T) {
		result := call(t, NewService(&fakeGenerator{}), map[string]any{"message": "hola", "tone": "romántica"})
		assert.True(t, result.IsError)
		assert.Equal(t, model.ErrInvalidTone.Error(), text(t, result))
	})

	t.Run("generator failure", func(t *testing.T) {
		result := call(t, NewService(&fakeGenerator{err: errors.New("boom")}), map[string]any{"message": "hola"})
		assert.True(t, result.IsError)
		assert.Equal(t, completion.FailureReply, text(t, result))
	})
}
