// Package catalog holds the read-only curriculum: topics, problems, concepts,
// resources, companies and the pattern relation derived from problem labels.
package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/models"
)

// Meta is the provenance stamped on the topics fixture.
type Meta struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generatedAt"`
}

// Quarantine describes a fixture entry rejected at load time.
type Quarantine struct {
	File   string `json:"file"`
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// Catalog is immutable after construction and safe for concurrent reads.
// Slices returned by its methods must not be modified.
type Catalog struct {
	meta        Meta
	topics      []models.Topic
	problems    []models.Problem
	concepts    []models.Concept
	resources   []models.Resource
	companies   []models.Company
	patterns    []models.Pattern
	quarantined []Quarantine

	topicByID         map[string]models.Topic
	problemByID       map[string]models.Problem
	conceptByID       map[string]models.Concept
	resourceByID      map[string]models.Resource
	problemsByTopic   map[string][]models.Problem
	conceptsByTopic   map[string][]models.Concept
	patternsByProblem map[string][]string
}

// New builds a catalog from already-typed entries. As with Load, the first
// entry wins when IDs repeat.
func New(topics []models.Topic, problems []models.Problem, concepts []models.Concept, resources []models.Resource, companies []models.Company) *Catalog {
	return build(Meta{},
		lo.UniqBy(topics, func(t models.Topic) string { return t.ID }),
		lo.UniqBy(problems, func(p models.Problem) string { return p.ID }),
		lo.UniqBy(concepts, func(c models.Concept) string { return c.ID }),
		lo.UniqBy(resources, func(r models.Resource) string { return r.ID }),
		lo.UniqBy(companies, func(c models.Company) string { return c.ID }),
		nil,
	)
}

func build(meta Meta, topics []models.Topic, problems []models.Problem, concepts []models.Concept, resources []models.Resource, companies []models.Company, quarantined []Quarantine) *Catalog {
	sorted := append([]models.Topic(nil), topics...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	c := &Catalog{
		meta:        meta,
		topics:      sorted,
		problems:    append([]models.Problem(nil), problems...),
		concepts:    append([]models.Concept(nil), concepts...),
		resources:   append([]models.Resource(nil), resources...),
		companies:   append([]models.Company(nil), companies...),
		quarantined: quarantined,

		topicByID:    lo.KeyBy(topics, func(t models.Topic) string { return t.ID }),
		problemByID:  lo.KeyBy(problems, func(p models.Problem) string { return p.ID }),
		conceptByID:  lo.KeyBy(concepts, func(c models.Concept) string { return c.ID }),
		resourceByID: lo.KeyBy(resources, func(r models.Resource) string { return r.ID }),

		conceptsByTopic: lo.GroupBy(concepts, func(c models.Concept) string { return c.TopicID }),
		problemsByTopic: map[string][]models.Problem{},
	}
	for _, p := range c.problems {
		for _, tid := range lo.Uniq(p.TopicIDs) {
			c.problemsByTopic[tid] = append(c.problemsByTopic[tid], p)
		}
	}
	c.patterns, c.patternsByProblem = derivePatterns(c.problems)
	return c
}

func (c *Catalog) Meta() Meta { return c.meta }

// Quarantined lists fixture entries rejected during Load.
func (c *Catalog) Quarantined() []Quarantine { return c.quarantined }

// Topics returns every topic sorted by order.
func (c *Catalog) Topics() []models.Topic { return c.topics }

func (c *Catalog) Topic(id string) (models.Topic, bool) {
	t, ok := c.topicByID[id]
	return t, ok
}

func (c *Catalog) TopicBySlug(slug string) (models.Topic, bool) {
	return lo.Find(c.topics, func(t models.Topic) bool { return t.Slug == slug })
}

func (c *Catalog) TopicByOrder(order int) (models.Topic, bool) {
	return lo.Find(c.topics, func(t models.Topic) bool { return t.Order == order })
}

func (c *Catalog) Problems() []models.Problem { return c.problems }

func (c *Catalog) Problem(id string) (models.Problem, bool) {
	p, ok := c.problemByID[id]
	return p, ok
}

// ProblemsByTopic returns problems linked to the topic in catalog order.
func (c *Catalog) ProblemsByTopic(topicID string) []models.Problem {
	return c.problemsByTopic[topicID]
}

func (c *Catalog) ProblemsByDifficulty(d models.Difficulty) []models.Problem {
	return lo.Filter(c.problems, func(p models.Problem, _ int) bool { return p.Difficulty == d })
}

// ProblemsByPattern matches the raw label case-insensitively by substring.
func (c *Catalog) ProblemsByPattern(pattern string) []models.Problem {
	needle := strings.ToLower(pattern)
	return lo.Filter(c.problems, func(p models.Problem, _ int) bool {
		return p.Pattern != nil && strings.Contains(strings.ToLower(*p.Pattern), needle)
	})
}

// SearchProblems matches title, pattern label or topic ID.
func (c *Catalog) SearchProblems(query string) []models.Problem {
	q := strings.ToLower(query)
	return lo.Filter(c.problems, func(p models.Problem, _ int) bool {
		if strings.Contains(strings.ToLower(p.Title), q) {
			return true
		}
		if p.Pattern != nil && strings.Contains(strings.ToLower(*p.Pattern), q) {
			return true
		}
		return lo.ContainsBy(p.TopicIDs, func(t string) bool { return strings.Contains(t, q) })
	})
}

// Patterns returns derived patterns, most-linked first.
func (c *Catalog) Patterns() []models.Pattern { return c.patterns }

// PatternsForProblem returns the IDs of patterns the problem belongs to.
func (c *Catalog) PatternsForProblem(problemID string) []string {
	return c.patternsByProblem[problemID]
}

func (c *Catalog) Concepts() []models.Concept { return c.concepts }

func (c *Catalog) Concept(id string) (models.Concept, bool) {
	cp, ok := c.conceptByID[id]
	return cp, ok
}

func (c *Catalog) ConceptsByTopic(topicID string) []models.Concept {
	return c.conceptsByTopic[topicID]
}

func (c *Catalog) Resources() []models.Resource { return c.resources }

func (c *Catalog) Resource(id string) (models.Resource, bool) {
	r, ok := c.resourceByID[id]
	return r, ok
}

func (c *Catalog) ResourcesByTopic(topicID string) []models.Resource {
	return lo.Filter(c.resources, func(r models.Resource, _ int) bool { return lo.Contains(r.TopicIDs, topicID) })
}

func (c *Catalog) ResourcesByType(typ string) []models.Resource {
	return lo.Filter(c.resources, func(r models.Resource, _ int) bool { return r.Type == typ })
}

func (c *Catalog) Companies() []models.Company { return c.companies }

// DifficultyDistribution counts catalog problems per difficulty.
func (c *Catalog) DifficultyDistribution() models.DifficultyCounts {
	dist := models.DifficultyCounts{}
	for _, d := range models.Difficulties {
		dist[d] = 0
	}
	for _, p := range c.problems {
		dist[p.Difficulty]++
	}
	return dist
}

func (c *Catalog) Stats() models.CatalogStats {
	return models.CatalogStats{
		TopicCount:    len(c.topics),
		ProblemCount:  len(c.problems),
		ConceptCount:  len(c.concepts),
		ResourceCount: len(c.resources),
		PatternCount:  len(c.patterns),
		CompanyCount:  len(c.companies),
		Version:       c.meta.Version,
		GeneratedAt:   c.meta.GeneratedAt,
	}
}
