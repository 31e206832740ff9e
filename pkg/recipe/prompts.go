package recipe

import (
	"encoding/json"
	"fmt"

	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/store"
)

const chefSystemPrompt = "You are a professional chef assistant. Return ONLY valid JSON with the exact specified keys. " +
	"Do not include any additional text or explanations outside the JSON structure. " +
	"The response must be pure JSON without any surrounding text or markdown."

const formatPromptTemplate = `Please format this recipe into a clean, standardized structure. Return ONLY valid JSON with these keys:
- title (cleaned up if needed)
- ingredients (as a clear list with standardized measurements)
- instructions (as numbered steps)
- minutes (cooking time if available)
- notes (any additional notes)

For ingredients:
- Convert all measurements to standard units (cups, tbsp, etc.)
- Group similar items together
- Ensure consistent formatting

For instructions:
- Break into clear numbered steps
- Each step should be a complete sentence
- Include all necessary details

Recipe to format:
%s`

const modifyPromptTemplate = `Modify this recipe to be %s. Return ONLY valid JSON with these keys:
- title (updated if needed)
- ingredients (modified list with standardized measurements)
- instructions (updated as numbered steps)
- minutes (adjusted time if needed)
- notes (brief explanation of changes)

IMPORTANT:
- Make substantial changes to actually fulfill the modification request
- Format ingredients and instructions clearly
- For vegan: replace all animal products with plant-based alternatives
- For spicier: add or increase spicy ingredients
- For quicker: suggest time-saving techniques

Original Recipe:
%s`

func chefMessages(userPrompt string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: chefSystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
}

func formatPrompt(r store.Recipe) (string, error) {
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(formatPromptTemplate, body), nil
}

func modifyPrompt(r store.Recipe, modification string) (string, error) {
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(modifyPromptTemplate, modification, body), nil
}
