package provider

// FallbackDefinition is the definition text used when a lookup yields nothing usable.
const FallbackDefinition = "Definition not found"

// DefinitionResult is the canonical record produced by a dictionary lookup.
// It is merged into a domain.Draft before submission and never persisted directly.
type DefinitionResult struct {
	Definition   string
	PartOfSpeech *string
	Example      *string
}

// Fallback returns the result used for every failed lookup.
func Fallback() DefinitionResult {
	return DefinitionResult{Definition: FallbackDefinition}
}

// IsFallback reports whether r is the fallback result.
func (r DefinitionResult) IsFallback() bool {
	return r.Definition == FallbackDefinition && r.PartOfSpeech == nil && r.Example == nil
}
