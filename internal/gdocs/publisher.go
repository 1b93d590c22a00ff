package gdocs

import (
	"context"
	"log/slog"

	"google.golang.org/api/docs/v1"

	"github.com/MikeSquared-Agency/quill/internal/markdown"
)

// DocumentAPI is the remote surface the publisher needs.
type DocumentAPI interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) error
}

type Publisher struct {
	api    DocumentAPI
	opts   Options
	logger *slog.Logger
}

func NewPublisher(api DocumentAPI, opts Options, logger *slog.Logger) *Publisher {
	return &Publisher{api: api, opts: opts, logger: logger}
}

// Publish creates a document with the given title and fills it with the
// segments in one atomic batch. Zero segments is valid: the document is
// created title-only and no batch call is made.
//
// The document id is returned even when the batch is rejected — the
// document exists at that point, just unformatted, and the caller needs
// its id to report the state.
func (p *Publisher) Publish(ctx context.Context, title string, segments []markdown.Segment) (string, error) {
	id, err := p.api.CreateDocument(ctx, title)
	if err != nil {
		return "", err
	}
	p.logger.Info("document created", "title", title, "document_id", id)

	requests := BuildRequests(segments, p.opts)
	if len(requests) == 0 {
		p.logger.Info("no content to insert", "document_id", id)
		return id, nil
	}

	if err := p.api.BatchUpdate(ctx, id, requests); err != nil {
		return id, err
	}

	p.logger.Info("content inserted and formatted",
		"document_id", id,
		"segments", len(segments),
		"requests", len(requests),
	)
	return id, nil
}
