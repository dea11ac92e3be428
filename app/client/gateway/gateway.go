package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"replygen/app/config"
	"replygen/app/model"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const generatePath = "/api/generate"

var ErrMissingReply = errors.New("response has no reply")

// Client talks to the completion gateway over HTTP.
type Client struct {
	baseURL string
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Client.GatewayURL), nil
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type replyBody struct {
	Reply *string `json:"reply"`
}

// Generate posts req and returns the reply. Any status other than 200 is an
// error, even when the body carries a reply text.
func (c *Client) Generate(ctx context.Context, req model.GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	errs := oops.In("gateway").With("url", c.baseURL+generatePath, "tone", req.Tone, "intensity", req.Intensity)

	agent := fiber.Post(c.baseURL + generatePath).JSON(req)
	if deadline, ok := ctx.Deadline(); ok {
		agent = agent.Timeout(time.Until(deadline))
	}

	if err := agent.Parse(); err != nil {
		return "", errs.Wrapf(err, "failed to prepare request")
	}

	code, body, agentErrs := agent.Bytes()
	if len(agentErrs) > 0 {
		return "", errs.Wrapf(errors.Join(agentErrs...), "request failed")
	}

	if code != fiber.StatusOK {
		return "", errs.With("status", code).Errorf("unexpected status %d", code)
	}

	var resp replyBody
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.Wrapf(err, "failed to decode response")
	}

	if resp.Reply == nil {
		return "", errs.Wrap(ErrMissingReply)
	}

	return *resp.Reply, nil
}
