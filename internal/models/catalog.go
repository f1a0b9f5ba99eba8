package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the catalog difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Frequency string

const (
	FrequencyHigh   Frequency = "high"
	FrequencyMedium Frequency = "medium"
	FrequencyLow    Frequency = "low"
)

// Rank orders frequencies high first.
func (f Frequency) Rank() int {
	switch f {
	case FrequencyHigh:
		return 0
	case FrequencyMedium:
		return 1
	default:
		return 2
	}
}

type TopicSection struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type Topic struct {
	ID            string         `json:"id"`
	Order         int            `json:"order"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	FileName      string         `json:"fileName"`
	Description   string         `json:"description"`
	TimeEstimate  string         `json:"timeEstimate"`
	Prerequisites []string       `json:"prerequisites"`
	Sections      []TopicSection `json:"sections"`
	HasDiagram    bool           `json:"hasDiagram"`
}

type Problem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Platform   string     `json:"platform"`
	Difficulty Difficulty `json:"difficulty"`
	Pattern    *string    `json:"pattern"`
	TopicIDs   []string   `json:"topicIds"`
}

// PatternLabel returns the raw pattern label or "".
func (p Problem) PatternLabel() string {
	if p.Pattern == nil {
		return ""
	}
	return *p.Pattern
}

type Concept struct {
	ID         string   `json:"id"`
	TopicID    string   `json:"topicId"`
	Title      string   `json:"title"`
	SectionNum string   `json:"sectionNum"`
	Level      int      `json:"level"`
	Checklist  []string `json:"checklist"`
	Complexity *string  `json:"complexity"`
}

type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	Platform    string   `json:"platform"`
	Description *string  `json:"description"`
	TopicIDs    []string `json:"topicIds"`
}

// Pattern is derived from problem labels when the catalog loads.
type Pattern struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Problems    []string  `json:"problems"`
	Frequency   Frequency `json:"frequency"`
}

type CompanyProblem struct {
	LeetcodeID int    `json:"leetcodeId"`
	Title      string `json:"title"`
}

type Company struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Logo     string           `json:"logo"`
	Tier     string           `json:"tier"`
	Problems []CompanyProblem `json:"problems"`
}

// CatalogStats summarises the loaded fixtures.
type CatalogStats struct {
	TopicCount    int    `json:"topicCount"`
	ProblemCount  int    `json:"problemCount"`
	ConceptCount  int    `json:"conceptCount"`
	ResourceCount int    `json:"resourceCount"`
	PatternCount  int    `json:"patternCount"`
	CompanyCount  int    `json:"companyCount"`
	Version       string `json:"version"`
	GeneratedAt   string `json:"generatedAt"`
}
