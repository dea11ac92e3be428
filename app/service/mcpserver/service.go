package mcpserver

import (
	"context"
	"log/slog"

	"replygen/app/model"
	"replygen/app/service/completion"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

const toolName = "generate_reply"

// Generator produces a reply for a request.
type Generator interface {
	Generate(ctx context.Context, req model.GenerateRequest) (string, error)
}

type Service struct {
	generator Generator
	server    *server.MCPServer
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*completion.Service](di)), nil
}

func NewService(generator Generator) *Service {
	s := &Service{
		generator: generator,
		server:    server.NewMCPServer("replygen", "1.0.0", server.WithToolCapabilities(false)),
	}

	s.server.AddTool(generateTool(), s.handleGenerate)

	return s
}

func generateTool() mcp.Tool {
	tones := make([]string, 0, len(model.Tones))
	for _, t := range model.Tones {
		tones = append(tones, string(t))
	}

	intensities := make([]string, 0, len(model.Intensities))
	for _, i := range model.Intensities {
		intensities = append(intensities, string(i))
	}

	return mcp.NewTool(toolName,
		mcp.WithDescription("Generate a short creative reply (in Spanish) to a message, in the requested tone and intensity."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to reply to"),
		),
		mcp.WithString("tone",
			mcp.Description("Tone of the reply"),
			mcp.Enum(tones...),
			mcp.DefaultString(string(model.DefaultTone)),
		),
		mcp.WithString("intensity",
			mcp.Description("How strongly the tone is applied"),
			mcp.Enum(intensities...),
			mcp.DefaultString(string(model.DefaultIntensity)),
		),
	)
}

func (s *Service) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tone, err := model.ParseTone(request.GetString("tone", string(model.DefaultTone)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	intensity, err := model.ParseIntensity(request.GetString("intensity", string(model.DefaultIntensity)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := s.generator.Generate(ctx, model.GenerateRequest{
		Message:   message,
		Tone:      tone,
		Intensity: intensity,
	})
	if err != nil {
		slog.ErrorContext(ctx, "MCP tool call failed", "tool", toolName, "error", err)
		return mcp.NewToolResultError(completion.FailureReply), nil
	}

	return mcp.NewToolResultText(reply), nil
}

// Run serves MCP over stdin/stdout until the input is closed.
func (s *Service) Run() error {
	return server.ServeStdio(s.server)
}
