package generation

import (
	"fmt"
	"strings"
)

// ContainsBengali reports whether any rune falls in the Bengali block
// (U+0980 to U+09FF). It decides the prompt's output language.
func ContainsBengali(s string) bool {
	for _, r := range s {
		if r >= 0x0980 && r <= 0x09FF {
			return true
		}
	}
	return false
}

const banglaExample = `
বাংলা ফরম্যাট উদাহরণ:
[
  {
    "name": "রেসিপির নাম",
    "ingredients": ["উপাদান ১", "উপাদান ২"],
    "instructions": "১. প্রথম ধাপ...\n২. দ্বিতীয় ধাপ...",
    "cookingTime": "X মিনিট",
    "difficulty": "সহজ/মধ্যম/কঠিন"
  }
]`

const englishExample = `
English Format Example:
[
  {
    "name": "Recipe Name",
    "ingredients": ["ingredient1", "ingredient2"],
    "instructions": "1. First step...\n2. Second step...",
    "cookingTime": "X mins",
    "difficulty": "Easy/Medium/Hard"
  }
]`

// BuildPrompt assembles the single completion prompt. The model is told
// to use only the given ingredients and answer with a bare JSON array;
// a language-matched example pins down the schema.
func BuildPrompt(ingredients []string) string {
	joined := strings.Join(ingredients, ", ")

	language := "English"
	example := englishExample
	if ContainsBengali(joined) {
		language = "Bangla (Bengali)"
		example = banglaExample
	}

	return fmt.Sprintf(`Generate as many creative and practical recipes as possible using ONLY these ingredients: %s.

IMPORTANT INSTRUCTIONS:
1. Respond in %s language only
2. For each recipe include:
   - A creative and descriptive name
   - All required ingredients (only from provided list)
   - Detailed step-by-step cooking instructions
   - Cooking time and difficulty level
   - Serving suggestions if applicable

STRICT RULES:
- Generate maximum possible distinct recipes
- Use only the provided ingredients
- Maintain consistent language throughout
- Make instructions practical and precise
- Include estimated cooking time
- Return perfect JSON format without any additional text
%s
`, joined, language, example)
}
