package crpt

import (
	"context"

	"crptlabs/crptgate/pkg/gate"
)

// GatedClient runs CreateDocument behind a rate gate. It blocks when the
// current window's admission quota is exhausted and propagates cancellation
// from the wait without issuing the request.
type GatedClient struct {
	client *Client
	gate   *gate.Gate
}

// NewGatedClient composes a client with an admission gate. The gated client
// references both; it owns neither.
func NewGatedClient(client *Client, g *gate.Gate) *GatedClient {
	return &GatedClient{
		client: client,
		gate:   g,
	}
}

// CreateDocument acquires a permit, then issues one create-document request.
//
// If the wait is cancelled the request is never sent and the limiter's
// cancellation error is returned. A failed request does not refund the
// consumed permit.
func (g *GatedClient) CreateDocument(ctx context.Context, doc *Document, signature, productGroup string) (*CreateResult, error) {
	var result *CreateResult
	err := g.gate.Submit(ctx, func(ctx context.Context) error {
		var workErr error
		result, workErr = g.client.CreateDocument(ctx, doc, signature, productGroup)
		return workErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
