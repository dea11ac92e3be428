package model

import (
	"errors"

	"github.com/elliotchance/pie/v2"
)

type Tone string

const (
	ToneCoqueta    Tone = "coqueta"
	ToneDivertida  Tone = "divertida"
	ToneMisteriosa Tone = "misteriosa"
	ToneFilosofica Tone = "filosófica"
)

type Intensity string

const (
	IntensityBaja  Intensity = "baja"
	IntensityMedia Intensity = "media"
	IntensityAlta  Intensity = "alta"
)

// Filter selects which history entries are shown. FilterAll disables filtering,
// every other value is a Tone.
type Filter string

const FilterAll Filter = "todos"

const (
	DefaultTone      = ToneCoqueta
	DefaultIntensity = IntensityMedia
)

var (
	Tones       = []Tone{ToneCoqueta, ToneDivertida, ToneMisteriosa, ToneFilosofica}
	Intensities = []Intensity{IntensityBaja, IntensityMedia, IntensityAlta}
	Filters     = []Filter{FilterAll, Filter(ToneCoqueta), Filter(ToneDivertida), Filter(ToneMisteriosa), Filter(ToneFilosofica)}
)

var (
	ErrInvalidTone      = errors.New("invalid tone")
	ErrInvalidIntensity = errors.New("invalid intensity")
	ErrInvalidFilter    = errors.New("invalid filter")
)

func (t Tone) Valid() bool {
	return pie.Contains(Tones, t)
}

func (i Intensity) Valid() bool {
	return pie.Contains(Intensities, i)
}

func (f Filter) Valid() bool {
	return pie.Contains(Filters, f)
}

// Matches reports whether an entry with tone t is visible under f.
func (f Filter) Matches(t Tone) bool {
	return f == FilterAll || Tone(f) == t
}

func ParseTone(s string) (Tone, error) {
	if t := Tone(s); t.Valid() {
		return t, nil
	}
	return "", ErrInvalidTone
}

func ParseIntensity(s string) (Intensity, error) {
	if i := Intensity(s); i.Valid() {
		return i, nil
	}
	return "", ErrInvalidIntensity
}

func ParseFilter(s string) (Filter, error) {
	if f := Filter(s); f.Valid() {
		return f, nil
	}
	return "", ErrInvalidFilter
}

// Next returns the value following cur in values, wrapping around. Unknown
// values restart from the first element.
func Next[T comparable](values []T, cur T) T {
	idx := pie.FindFirstUsing(values, func(v T) bool {
		return v == cur
	})

	return values[(idx+1)%len(values)]
}

// Temperature is the sampling temperature used for a given intensity.
func Temperature(i Intensity) float64 {
	switch i {
	case IntensityAlta:
		return 0.9
	case IntensityMedia:
		return 0.7
	default:
		return 0.5
	}
}

type Draft struct {
	Message   string
	Tone      Tone
	Intensity Intensity
}

// Request is the wire form of the draft sent to the gateway.
func (d Draft) Request() GenerateRequest {
	return GenerateRequest{
		Message:   d.Message,
		Tone:      d.Tone,
		Intensity: d.Intensity,
	}
}

type HistoryEntry struct {
	Prompt    string    `json:"prompt"`
	Reply     string    `json:"reply"`
	Tone      Tone      `json:"tone"`
	Intensity Intensity `json:"intensity"`
}

type GenerateRequest struct {
	Message   string    `json:"message"`
	Tone      Tone      `json:"tone" validate:"oneof=coqueta divertida misteriosa filosófica"`
	Intensity Intensity `json:"intensity" validate:"oneof=baja media alta"`
}

type GenerateResponse struct {
	Reply string `json:"reply"`
}
