// Package demoreasoner is a worked example of a reasoning module living
// on the proposing side of the intelligence boundary: it sends a
// free-text request to Gemini and hands the reply back as an
// intelligence.Proposal. It must never import any kernel package — the
// whole point of the example is that intelligence.VerifyImportBoundary
// passes against this directory. Grounded on the teacher's GenAI client
// construction in internal/embedding/genai.go, adapted from embeddings to
// text generation.
package demoreasoner

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"mek/internal/intelligence"
)

// Reasoner wraps a Gemini client used purely to draft Proposals. It
// carries no authority: nothing it returns is admitted until a caller
// builds a real Intent from the suggestion and runs it through a Guard.
type Reasoner struct {
	client *genai.Client
	model  string
}

// New constructs a Reasoner. model defaults to "gemini-2.0-flash" when
// empty.
func New(ctx context.Context, apiKey, model string) (*Reasoner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("demoreasoner: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("demoreasoner: create genai client: %w", err)
	}
	return &Reasoner{client: client, model: model}, nil
}

// Propose sends request to the model unchanged and returns an
// intelligence.Proposal whose Rationale is the model's reply text.
// SuggestedCapability is left empty and SuggestedFields carries only the
// raw request; no capability is parsed out of the reply. The caller
// decides, entirely outside this package, whether and how to turn that
// suggestion into a real admission attempt.
func (r *Reasoner) Propose(ctx context.Context, request string) (intelligence.Proposal, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(request, genai.RoleUser),
	}
	result, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return intelligence.Proposal{}, fmt.Errorf("demoreasoner: generate content: %w", err)
	}

	text := result.Text()
	return intelligence.Proposal{
		SuggestedCapability: "", // left for the caller's own parsing of text
		SuggestedFields:     map[string]string{"raw_request": request},
		Rationale:           text,
	}, nil
}
