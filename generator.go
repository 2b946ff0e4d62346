package schemascan

import "context"

// TextGenerator is a generative text capability, typically a hosted language
// model. Callers must treat any error, including a deadline, the same way as
// an unusable response.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationTier identifies which strategy produced generated items.
type GenerationTier string

// Generation tiers.
const (
	TierGenerative GenerationTier = "generative"
	TierHeuristic  GenerationTier = "heuristic"
)

// SystemInstruction is the system prompt sent to hosted models alongside the
// page prompt.
const SystemInstruction = "You are a structured data assistant. You produce schema.org JSON-LD objects describing web pages. Reply with a single JSON array and nothing else."
