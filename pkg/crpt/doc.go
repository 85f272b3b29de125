// Package crpt is a client for the CRPT marking API's document-creation
// endpoint.
//
// # Overview
//
// The package provides two client surfaces:
//
//   - Client: one HTTP POST per call, no admission control
//   - GatedClient: the same call gated through a rate limiter, blocking when
//     the current window's quota is exhausted
//
// # Wire Format
//
// CreateDocument serializes the document into the create-document envelope:
// the document itself is embedded as a JSON string in the product_document
// field, alongside the detached signature, the product group, and the fixed
// MANUAL/LP_INTRODUCE_GOODS format and type markers.
//
// # Usage
//
//	limiter, _ := ratelimit.New(time.Second, 5)
//	g, _ := gate.New(limiter)
//	client, _ := crpt.NewClient(crpt.Config{Token: token})
//	gated := crpt.NewGatedClient(client, g)
//
//	result, err := gated.CreateDocument(ctx, doc, signature, "shoes")
package crpt
