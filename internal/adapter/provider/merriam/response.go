package merriam

import (
	"encoding/json"
	"strings"

	"github.com/heartmarshall/vocabook/internal/provider"
)

// The collegiate API returns a JSON array whose elements are entry objects
// for known words and bare strings (spelling suggestions) for unknown ones.
// Entry objects themselves vary by word, so every level is decoded lazily
// from json.RawMessage and a mismatch at any level means "absent".

// step moves one level deeper into a raw JSON value.
type step func(json.RawMessage) (json.RawMessage, bool)

// index selects the i-th element of a JSON array.
func index(i int) step {
	return func(raw json.RawMessage) (json.RawMessage, bool) {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil || i >= len(arr) {
			return nil, false
		}
		return arr[i], true
	}
}

// key selects a member of a JSON object.
func key(name string) step {
	return func(raw json.RawMessage) (json.RawMessage, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, false
		}
		v, ok := obj[name]
		return v, ok
	}
}

// walk applies steps in order, short-circuiting on the first missing level.
func walk(raw json.RawMessage, steps ...step) (json.RawMessage, bool) {
	cur := raw
	for _, s := range steps {
		next, ok := s(cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// examplePath is def[0].sseq[0][0][1].dt[1][1]: first definition section,
// first sense group, first sense, its body, second defining-text token, token content.
var examplePath = []step{
	key("def"), index(0),
	key("sseq"), index(0), index(0), index(1),
	key("dt"), index(1), index(1),
}

// mapEntry converts the first array element into a DefinitionResult.
// ok is false when the element is not an entry object or has no short definitions.
func mapEntry(raw json.RawMessage) (provider.DefinitionResult, bool) {
	shortdefRaw, ok := walk(raw, key("shortdef"))
	if !ok {
		return provider.DefinitionResult{}, false
	}
	var shortdefs []string
	if err := json.Unmarshal(shortdefRaw, &shortdefs); err != nil {
		return provider.DefinitionResult{}, false
	}
	definition := strings.Join(shortdefs, "; ")
	if strings.TrimSpace(definition) == "" {
		return provider.DefinitionResult{}, false
	}

	result := provider.DefinitionResult{Definition: definition}

	if flRaw, ok := walk(raw, key("fl")); ok {
		result.PartOfSpeech = nonEmptyString(flRaw)
	}

	if tokenRaw, ok := walk(raw, examplePath...); ok {
		result.Example = tokenText(tokenRaw)
	}

	return result, true
}

// tokenText extracts text from a defining-text token's content: either a plain
// string, or a verbal-illustration list whose first element carries a "t" field.
func tokenText(raw json.RawMessage) *string {
	if s := nonEmptyString(raw); s != nil {
		return s
	}
	if t, ok := walk(raw, index(0), key("t")); ok {
		return nonEmptyString(t)
	}
	return nil
}

func nonEmptyString(raw json.RawMessage) *string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
