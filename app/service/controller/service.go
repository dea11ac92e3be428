package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"replygen/app/client/gateway"
	"replygen/app/model"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// FallbackReply is shown instead of a reply when generation fails for any reason.
const FallbackReply = "Error al generar la respuesta. Intenta nuevamente."

// Gateway produces a reply for a request.
type Gateway interface {
	Generate(ctx context.Context, req model.GenerateRequest) (string, error)
}

// Pending is a generation in flight. It carries the draft exactly as it was
// sent, so the resulting history entry does not depend on later edits.
type Pending struct {
	draft   model.Draft
	started time.Time
}

func (p Pending) Draft() model.Draft {
	return p.draft
}

// State is a copy of everything a front end renders.
type State struct {
	Draft     model.Draft
	Loading   bool
	Reply     string
	Favorites []string
	History   []model.HistoryEntry
	Filter    model.Filter
}

type Service struct {
	gateway Gateway

	mu        sync.RWMutex
	draft     model.Draft
	loading   bool
	reply     string
	favorites []string
	history   []model.HistoryEntry
	filter    model.Filter
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*gateway.Client](di)), nil
}

func NewService(gw Gateway) *Service {
	return &Service{
		gateway: gw,
		draft: model.Draft{
			Tone:      model.DefaultTone,
			Intensity: model.DefaultIntensity,
		},
		filter: model.FilterAll,
	}
}

func (s *Service) SetDraftMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Message = text
}

func (s *Service) SetTone(t model.Tone) error {
	if !t.Valid() {
		return model.ErrInvalidTone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Tone = t
	return nil
}

func (s *Service) SetIntensity(level model.Intensity) error {
	if !level.Valid() {
		return model.ErrInvalidIntensity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Intensity = level
	return nil
}

func (s *Service) SetFilterTone(f model.Filter) error {
	if !f.Valid() {
		return model.ErrInvalidFilter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = f
	return nil
}

// CanGenerate reports whether Begin would start a generation.
func (s *Service) CanGenerate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return !s.loading && s.draft.Message != ""
}

// Begin starts a generation: it marks the service as loading, clears the
// current reply and snapshots the draft. It returns false and changes
// nothing while another generation is loading or the message is empty.
func (s *Service) Begin() (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading || s.draft.Message == "" {
		return Pending{}, false
	}

	s.loading = true
	s.reply = ""

	slog.Debug("Generation started",
		"tone", s.draft.Tone,
		"intensity", s.draft.Intensity,
	)

	return Pending{draft: s.draft, started: time.Now()}, true
}

// Complete applies the outcome of p. Results are applied in arrival order.
func (s *Service) Complete(p Pending, reply string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if err != nil {
		slog.Warn("Generation failed",
			"error", err,
			"duration", time.Since(p.started),
		)
		s.reply = FallbackReply
		return
	}

	s.reply = reply
	s.history = append([]model.HistoryEntry{{
		Prompt:    p.draft.Message,
		Reply:     reply,
		Tone:      p.draft.Tone,
		Intensity: p.draft.Intensity,
	}}, s.history...)

	slog.Info("Generation finished",
		"tone", p.draft.Tone,
		"intensity", p.draft.Intensity,
		"history_size", len(s.history),
		"duration", time.Since(p.started),
	)
}

// Run calls the gateway for p.
func (s *Service) Run(ctx context.Context, p Pending) (string, error) {
	return s.gateway.Generate(ctx, p.draft.Request())
}

// Generate runs a whole generation synchronously. It returns false when the
// request was suppressed.
func (s *Service) Generate(ctx context.Context) bool {
	p, ok := s.Begin()
	if !ok {
		return false
	}

	reply, err := s.Run(ctx, p)
	s.Complete(p, reply, err)

	return true
}

// SaveFavorite keeps the current reply. Empty and already saved replies are ignored.
func (s *Service) SaveFavorite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reply == "" || pie.Contains(s.favorites, s.reply) {
		return false
	}

	s.favorites = append(s.favorites, s.reply)
	return true
}

func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Draft:     s.draft,
		Loading:   s.loading,
		Reply:     s.reply,
		Favorites: append([]string(nil), s.favorites...),
		History:   append([]model.HistoryEntry(nil), s.history...),
		Filter:    s.filter,
	}
}
