package analysis

import (
	"encoding/json"
	"strings"
	"time"
)

// Category enum (soft: unknown values from the backend pass through as-is)
type Category = string

const (
	CategoryNews          Category = "News"
	CategoryTechnology    Category = "Technology"
	CategorySports        Category = "Sports"
	CategoryPolitics      Category = "Politics"
	CategoryBusiness      Category = "Business"
	CategoryScience       Category = "Science"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// PersonList is the list of person names reported by the backend.
// The backend is not strict about its output schema: "persons" may arrive
// as a JSON array of strings or as one plain string. Both decode into a
// PersonList; downstream code only ever joins it, never branches on shape.
type PersonList []string

func (p *PersonList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*p = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*p = nil
		return nil
	}
	*p = PersonList{one}
	return nil
}

// Join flattens the list to the comma-joined storage/response form.
func (p PersonList) Join() string {
	return strings.Join(p, ", ")
}

// Result is the outcome of one analysis call. It is always fully
// populated: either the backend's validated answer or the fallback.
type Result struct {
	Summary  string     `json:"summary"`
	Persons  PersonList `json:"persons"`
	Category Category   `json:"category"`
}

// DecodeResult parses the JSON answer embedded in a backend reply and
// applies field defaults. Shared by every backend client.
func DecodeResult(data []byte) (Result, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, err
	}
	if res.Category == "" {
		res.Category = CategoryOther
	}
	return res, nil
}

// Aggregate Root: Analysis, one analysed article as persisted
type Analysis struct {
	ID           int64     `json:"id"`
	OriginalText string    `json:"original_text"`
	Summary      string    `json:"summary"`
	Persons      string    `json:"persons"` // comma-joined
	Category     Category  `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}
