package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"cooking-assistant-be/pkg/store"
)

var (
	// newlines or inline "N. " numbering
	stepSplitPattern = regexp.MustCompile(`\n+|\d+\.\s+`)
	// leading "1." / "1)" on a single step
	stepPrefixPattern = regexp.MustCompile(`^\d+[.)]\s*`)
)

// ParseSteps turns free instruction text into sequentially numbered steps.
func ParseSteps(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	var steps []string
	for _, part := range stepSplitPattern.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			steps = append(steps, part)
		}
	}
	return number(steps)
}

// NormalizeSteps numbers instructions that may be raw text (a single entry)
// or an already split list with or without its own numbering.
func NormalizeSteps(instructions []string) []string {
	if len(instructions) == 1 {
		return ParseSteps(instructions[0])
	}
	steps := make([]string, 0, len(instructions))
	for _, step := range instructions {
		step = strings.TrimSpace(stepPrefixPattern.ReplaceAllString(strings.TrimSpace(step), ""))
		if step != "" {
			steps = append(steps, step)
		}
	}
	return number(steps)
}

// SplitIngredients splits raw ingredient text on newlines.
func SplitIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, entry := range ingredients {
		for _, line := range strings.Split(entry, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// Normalize applies the deterministic local transform.
func Normalize(r store.Recipe) store.Recipe {
	r.Ingredients = SplitIngredients(r.Ingredients)
	r.Instructions = NormalizeSteps(r.Instructions)
	return r
}

func number(steps []string) []string {
	out := make([]string, len(steps))
	for i, step := range steps {
		out[i] = fmt.Sprintf("%d. %s", i+1, step)
	}
	return out
}
