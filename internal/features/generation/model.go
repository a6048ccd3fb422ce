package generation

// Candidate is a recipe proposed by the model, before validity
// filtering. Fields are strictly string/list typed: an element whose
// cookingTime or difficulty is not a string fails to decode and is
// discarded with it.
type Candidate struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
}

// Valid reports whether a candidate survives the filter: non-empty
// name, at least one ingredient, non-empty instructions, and string
// cookingTime/difficulty present.
func (c Candidate) Valid() bool {
	return c.Name != "" &&
		len(c.Ingredients) > 0 &&
		c.Instructions != "" &&
		c.CookingTime != "" &&
		c.Difficulty != ""
}

type GeneratePlanRequest struct {
	Ingredients []string `json:"ingredients"`
}

type SaveRecipeRequest struct {
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
}
