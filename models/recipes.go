package models

// DefaultImage is used when a recipe is created without an image URL.
const DefaultImage = "https://images.unsplash.com/photo-1495521821757-a1efb6729352?w=800&auto=format&fit=crop"

type Recipe struct {
	ID           string   `json:"id" firestore:"id"`
	Title        string   `json:"title" firestore:"title"`
	Image        string   `json:"image" firestore:"image"`
	CookTime     string   `json:"cookTime" firestore:"cookTime"`
	Servings     int      `json:"servings" firestore:"servings"`
	Difficulty   string   `json:"difficulty" firestore:"difficulty"`
	Author       string   `json:"author" firestore:"author"`
	Ingredients  []string `json:"ingredients" firestore:"ingredients"`
	Instructions []string `json:"instructions" firestore:"instructions"`
}

// Clone returns a deep copy of r. Nil slices come back empty so the JSON
// encoding is always an array.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string{}, r.Ingredients...)
	c.Instructions = append([]string{}, r.Instructions...)
	return c
}

// NewRecipe is the payload accepted when creating a recipe.
type NewRecipe struct {
	Title        string   `json:"title"`
	Image        string   `json:"image,omitempty"`
	CookTime     string   `json:"cookTime"`
	Servings     int      `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Author       string   `json:"author"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

// RecipePatch is the payload accepted when updating a recipe. A nil field was
// not provided by the caller.
type RecipePatch struct {
	Title        *string   `json:"title,omitempty"`
	Image        *string   `json:"image,omitempty"`
	CookTime     *string   `json:"cookTime,omitempty"`
	Servings     *int      `json:"servings,omitempty"`
	Difficulty   *string   `json:"difficulty,omitempty"`
	Author       *string   `json:"author,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty"`
}

// ApplyTo merges p into r. Only non-empty strings, positive servings and
// non-empty sequences overwrite; anything else keeps the stored value, so a
// field cannot be cleared through a patch. The id is never touched.
func (p RecipePatch) ApplyTo(r *Recipe) {
	setString(&r.Title, p.Title)
	setString(&r.Image, p.Image)
	setString(&r.CookTime, p.CookTime)
	setString(&r.Difficulty, p.Difficulty)
	setString(&r.Author, p.Author)
	if p.Servings != nil && *p.Servings > 0 {
		r.Servings = *p.Servings
	}
	setList(&r.Ingredients, p.Ingredients)
	setList(&r.Instructions, p.Instructions)
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setList(dst *[]string, v *[]string) {
	if v != nil && len(*v) > 0 {
		*dst = append([]string{}, (*v)...)
	}
}

// String returns a pointer to s for use in a RecipePatch.
func String(s string) *string { return &s }

// Int returns a pointer to i for use in a RecipePatch.
func Int(i int) *int { return &i }

// Strings returns a pointer to the list s for use in a RecipePatch.
func Strings(s ...string) *[]string { return &s }
