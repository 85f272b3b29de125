// Crptgate submits marking documents to the CRPT API behind a fixed-window
// rate gate.
//
// Usage:
//
//	# Submit a document, waiting for admission when the window is exhausted
//	crptgate submit --document doc.json --signature sig.b64 --group shoes
//
//	# Inspect the submission journal
//	crptgate journal list --limit 20
//
//	# Prune journal entries older than 30 days
//	crptgate journal prune --older-than 720h
//
//	# Show version information
//	crptgate version
package main

func main() {
	Execute()
}
