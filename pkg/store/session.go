package store

import "time"

// Session is the conversational state kept per client between requests.
type Session struct {
	ID string `json:"id"`

	// Accumulated base query of the last fresh search
	Ingredients string `json:"ingredients"`
	// Refinement text appended since the last fresh search
	Preferences string `json:"preferences"`

	// Top-k of the most recent fresh or refined search, relevance order
	CurrentResults []Recipe `json:"current_results"`

	// Modified recipes keyed by Recipe.Key()
	ModifiedRecipes map[string]Recipe `json:"modified_recipes"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the client-visible part of a Session.
type Snapshot struct {
	Ingredients     string            `json:"ingredients"`
	Preferences     string            `json:"preferences"`
	ModifiedRecipes map[string]Recipe `json:"modified_recipes"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:              id,
		CurrentResults:  []Recipe{},
		ModifiedRecipes: map[string]Recipe{},
	}
}

// Reset clears every field except the ID.
func (s *Session) Reset() {
	s.Ingredients = ""
	s.Preferences = ""
	s.CurrentResults = []Recipe{}
	s.ModifiedRecipes = map[string]Recipe{}
}

// EnsureDefaults fills nil collections left by older or partial payloads.
func (s *Session) EnsureDefaults() {
	if s.CurrentResults == nil {
		s.CurrentResults = []Recipe{}
	}
	if s.ModifiedRecipes == nil {
		s.ModifiedRecipes = map[string]Recipe{}
	}
}

func (s *Session) Snapshot() Snapshot {
	modified := make(map[string]Recipe, len(s.ModifiedRecipes))
	for k, v := range s.ModifiedRecipes {
		modified[k] = v
	}
	return Snapshot{
		Ingredients:     s.Ingredients,
		Preferences:     s.Preferences,
		ModifiedRecipes: modified,
	}
}

// EmptySnapshot is what a freshly reset session looks like to clients.
func EmptySnapshot() Snapshot {
	return Snapshot{ModifiedRecipes: map[string]Recipe{}}
}
