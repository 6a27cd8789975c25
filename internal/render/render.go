// Package render produces the projector-facing HTML board.
//
// All dynamic content passes through html/template, so untrusted cell text
// (team names come straight from the form) is escaped on output. Score
// formatting, unit conversion and grouping separators live here and nowhere
// upstream.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/rmclanahan/nasea-leaderboard/internal/domain/page"
	"github.com/rmclanahan/nasea-leaderboard/internal/domain/types"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Row is one rendered table line.
type Row struct {
	Rank   int
	Team   string
	Score  string
	Status string
}

// BoardData is the template payload for every board state.
type BoardData struct {
	Rows         []Row
	Empty        bool
	ErrorMessage string
	LastUpdated  string
	TotalEntries int
	RangeStart   int // 1-based, for the caption
	RangeEnd     int
	Page         int // 1-based, for the caption
	TotalPages   int
	RefreshSec   int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithDisplayMultiplier sets the factor converting scores in the configured
// unit to raw display dollars.
func WithDisplayMultiplier(m float64) Option {
	return func(r *Renderer) {
		if m > 0 {
			r.displayMultiplier = m
		}
	}
}

// WithRefreshSeconds sets the page's self-refresh interval.
func WithRefreshSeconds(s int) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.refreshSec = s
		}
	}
}

// Renderer turns a ranked page slice into the styled HTML board.
type Renderer struct {
	tmpl              *template.Template
	printer           *message.Printer
	displayMultiplier float64
	refreshSec        int
}

// New creates a Renderer with the embedded board template.
func New(opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse board template: %w", err)
	}
	r := &Renderer{
		tmpl:              tmpl,
		printer:           message.NewPrinter(language.English),
		displayMultiplier: 1,
		refreshSec:        10,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// FormatScore converts a score in the configured unit to a display dollar
// string with grouping separators, e.g. 10490 -> "$10,490,000" when the
// multiplier is 1000.
func (r *Renderer) FormatScore(score float64) string {
	dollars := int64(math.Round(score * r.displayMultiplier))
	return r.printer.Sprintf("$%d", dollars)
}

// Board renders the normal board state for the given page slice.
// pageEntries must already be the [view.Start, view.End) window of the
// ranked list. An empty list renders the explicit empty state.
func (r *Renderer) Board(view page.View, pageEntries []types.Entry, lastUpdated time.Time) ([]byte, error) {
	data := BoardData{
		Empty:        view.Empty(),
		LastUpdated:  lastUpdated.Format("15:04:05"),
		TotalEntries: view.Total,
		RangeStart:   view.Start + 1,
		RangeEnd:     view.End,
		Page:         view.Page + 1,
		TotalPages:   view.TotalPages,
		RefreshSec:   r.refreshSec,
	}
	for _, e := range pageEntries {
		data.Rows = append(data.Rows, Row{
			Rank:   e.Rank,
			Team:   e.TeamName,
			Score:  r.FormatScore(e.Score),
			Status: e.Status,
		})
	}
	return r.execute(data)
}

// Error renders the full-page diagnostic state; it replaces the table
// entirely so a broken tick never shows a partial or stale board.
func (r *Renderer) Error(msg string, lastUpdated time.Time) ([]byte, error) {
	data := BoardData{
		ErrorMessage: msg,
		LastUpdated:  lastUpdated.Format("15:04:05"),
		RefreshSec:   r.refreshSec,
	}
	return r.execute(data)
}

func (r *Renderer) execute(data BoardData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "board.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render board: %w", err)
	}
	return buf.Bytes(), nil
}
