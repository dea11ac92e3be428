package completion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"replygen/app/config"
	"replygen/app/model"

	_ "embed"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
)

//go:embed prompt_template.txt
var promptTemplate string

// FailureReply is returned to HTTP and MCP callers when generation fails.
const FailureReply = "Error al generar la respuesta."

type Service struct {
	llm       llms.Model
	maxTokens int
	timeout   time.Duration
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	llm, err := createModel(cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("createModel: %w", err)
	}

	return NewService(llm, cfg.OpenAI.MaxTokens, cfg.OpenAI.Timeout), nil
}

func NewService(llm llms.Model, maxTokens int, timeout time.Duration) *Service {
	return &Service{
		llm:       llm,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Generate asks the model for a reply to req and trims the result.
func (s *Service) Generate(ctx context.Context, req model.GenerateRequest) (string, error) {
	prompt := BuildPrompt(req)
	temperature := model.Temperature(req.Intensity)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	result, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		return "", oops.
			In("completion").
			With("tone", req.Tone, "intensity", req.Intensity).
			Wrapf(err, "failed to generate completion")
	}

	slog.Debug("Completion generated",
		"tone", req.Tone,
		"intensity", req.Intensity,
		"temperature", temperature,
		"duration", time.Since(start),
	)

	return strings.TrimSpace(result), nil
}

func BuildPrompt(req model.GenerateRequest) string {
	templateValues := map[string]any{
		"tone":      req.Tone,
		"intensity": req.Intensity,
		"message":   req.Message,
	}

	prompt := promptTemplate
	// message goes last so placeholders typed by the user stay literal
	for _, key := range []string{"tone", "intensity", "message"} {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(templateValues[key]))
	}

	return prompt
}
