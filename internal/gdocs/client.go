// Package gdocs creates and fills Google Docs documents from parsed
// markdown segments.
package gdocs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const docBaseURL = "https://docs.google.com/document/d/"

// Client is a thin wrapper over the Docs API service.
type Client struct {
	svc    *docs.Service
	logger *slog.Logger
}

// NewClient builds a Docs API client. The caller supplies the credential
// as an option (option.WithTokenSource); tests point the client at an
// httptest server with option.WithEndpoint and option.WithHTTPClient.
func NewClient(ctx context.Context, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("docs service: %w", err)
	}
	return &Client{svc: svc, logger: logger}, nil
}

// CreateDocument creates a new empty document and returns its id.
func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	doc, err := c.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	c.logger.Debug("document created", "document_id", doc.DocumentId)
	return doc.DocumentId, nil
}

// BatchUpdate submits one atomic batch of edit requests against a
// document. The API applies the whole batch or rejects it.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) error {
	_, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return fmt.Errorf("batch update: api error %d: %s", gerr.Code, gerr.Message)
		}
		return fmt.Errorf("batch update: %w", err)
	}
	return nil
}

// ViewURL returns the browser link for a document id.
func ViewURL(documentID string) string {
	return docBaseURL + documentID
}
