// Package notice loads store announcements and tracks which one is expanded.
package notice

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

const MsgLoadFailed = "Oh. Somethings went wrong. Cannot load notices."

// LoadError is what users see when the notice listing fails.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return MsgLoadFailed }

func (e *LoadError) Unwrap() error { return e.Err }

type Service struct {
	client *backend.Client
	logger logger.ZapLogger
}

func NewService(client *backend.Client, log logger.ZapLogger) *Service {
	return &Service{client: client, logger: log}
}

func (s *Service) List(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	if err := s.client.Get(ctx, "notice.list", "/notice", nil, &notices); err != nil {
		s.logger.Error("failed to load notices", zap.Error(err))
		return nil, &LoadError{Err: err}
	}
	return notices, nil
}

// Board is an accordion over the notice list: at most one notice is expanded.
type Board struct {
	Notices  []model.Notice
	expanded int64
}

// NewBoard opens the board with routeID expanded; 0 leaves every notice closed.
func NewBoard(notices []model.Notice, routeID int64) *Board {
	return &Board{Notices: notices, expanded: routeID}
}

// Toggle expands id, or collapses it when it is already expanded.
func (b *Board) Toggle(id int64) {
	if b.expanded == id {
		b.expanded = 0
		return
	}
	b.expanded = id
}

func (b *Board) IsExpanded(id int64) bool {
	return id != 0 && b.expanded == id
}

// Expanded returns the expanded notice, if it is on the board.
func (b *Board) Expanded() (model.Notice, bool) {
	for _, n := range b.Notices {
		if b.IsExpanded(n.ID) {
			return n, true
		}
	}
	return model.Notice{}, false
}

// PlainDetail flattens an HTML notice body into text, one block per line.
func PlainDetail(detail string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(detail))
	if err != nil {
		return strings.TrimSpace(detail)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
