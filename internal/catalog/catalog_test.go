package catalog_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/testutil"
)

func TestFrequencyFor_Boundaries(t *testing.T) {
	tests := []struct {
		n    int
		want models.Frequency
	}{
		{21, models.FrequencyHigh},
		{20, models.FrequencyMedium},
		{6, models.FrequencyMedium},
		{5, models.FrequencyLow},
		{0, models.FrequencyLow},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.FrequencyFor(tt.n))
		})
	}
}

func TestSplitPatternLabel(t *testing.T) {
	assert.Equal(t, []string{"Two Pointers", "Sliding Window"}, catalog.SplitPatternLabel("Two Pointers / Sliding Window"))
	assert.Equal(t, []string{"DFS", "BFS", "Graph"}, catalog.SplitPatternLabel("DFS, BFS & Graph"))
	assert.Equal(t, []string{"Stack"}, catalog.SplitPatternLabel("Stack / / Stack"))
	assert.Empty(t, catalog.SplitPatternLabel("  "))
}

func TestPatternID(t *testing.T) {
	assert.Equal(t, "two-pointers", catalog.PatternID("Two Pointers"))
	assert.Equal(t, "c-tricks", catalog.PatternID("C++ Tricks"))
}

func TestPatterns_DerivedFromLabels(t *testing.T) {
	c := testutil.SampleCatalog(t)

	names := lo.Map(c.Patterns(), func(p models.Pattern, _ int) string { return p.Name })
	assert.Equal(t, []string{"Hash Map", "Linked List", "Sorting", "Two Pointers", "Heap", "DFS", "BFS"}, names)

	hashMap := c.Patterns()[0]
	assert.Equal(t, "hash-map", hashMap.ID)
	assert.Equal(t, []string{"two-sum", "valid-anagram"}, hashMap.Problems)
	assert.Equal(t, models.FrequencyLow, hashMap.Frequency)

	assert.Equal(t, []string{"hash-map", "sorting"}, c.PatternsForProblem("valid-anagram"))
	assert.Equal(t, []string{"dfs", "bfs"}, c.PatternsForProblem("num-islands"))
	assert.Empty(t, c.PatternsForProblem("unknown"))
}

func TestPatterns_HighFrequencyBucket(t *testing.T) {
	problems := make([]models.Problem, 0, 21)
	for i := 0; i < 21; i++ {
		problems = append(problems, models.Problem{
			ID:         fmt.Sprintf("p%d", i),
			Title:      fmt.Sprintf("Problem %d", i),
			Difficulty: models.DifficultyEasy,
			Pattern:    testutil.Ptr("Sliding Window"),
			TopicIDs:   []string{"t"},
		})
	}
	c := catalog.New(nil, problems, nil, nil, nil)
	require.Len(t, c.Patterns(), 1)
	assert.Equal(t, models.FrequencyHigh, c.Patterns()[0].Frequency)

	c = catalog.New(nil, problems[:20], nil, nil, nil)
	assert.Equal(t, models.FrequencyMedium, c.Patterns()[0].Frequency)
}

func TestLookups(t *testing.T) {
	c := testutil.SampleCatalog(t)

	ids := lo.Map(c.Topics(), func(t models.Topic, _ int) string { return t.ID })
	assert.Equal(t, []string{"arrays-strings", "linked-lists", "graphs"}, ids)

	topic, ok := c.TopicBySlug("graphs")
	require.True(t, ok)
	assert.Equal(t, 3, topic.Order)

	topic, ok = c.TopicByOrder(2)
	require.True(t, ok)
	assert.Equal(t, "linked-lists", topic.ID)

	_, ok = c.Topic("missing")
	assert.False(t, ok)

	assert.Len(t, c.ProblemsByTopic("arrays-strings"), 3)
	assert.Len(t, c.ConceptsByTopic("arrays-strings"), 2)
	assert.Empty(t, c.ProblemsByTopic("missing"))

	assert.Len(t, c.ProblemsByDifficulty(models.DifficultyEasy), 3)
	assert.Len(t, c.ProblemsByPattern("linked"), 2)
	assert.Len(t, c.SearchProblems("islands"), 1)
	assert.Len(t, c.SearchProblems("graphs"), 1)

	assert.Len(t, c.ResourcesByTopic("graphs"), 1)
	assert.Len(t, c.ResourcesByType("video"), 1)

	dist := c.DifficultyDistribution()
	assert.Equal(t, 3, dist[models.DifficultyEasy])
	assert.Equal(t, 2, dist[models.DifficultyMedium])
	assert.Equal(t, 1, dist[models.DifficultyHard])

	stats := c.Stats()
	assert.Equal(t, 3, stats.TopicCount)
	assert.Equal(t, 6, stats.ProblemCount)
	assert.Equal(t, 4, stats.ConceptCount)
	assert.Equal(t, 7, stats.PatternCount)
	assert.Equal(t, 4, stats.CompanyCount)
}

func fixtureFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func validFiles() map[string]string {
	return map[string]string{
		catalog.TopicsFile: `{"version":"2.1.0","generatedAt":"2026-01-01","count":2,"topics":[
			{"id":"arrays","order":1,"title":"Arrays","slug":"arrays","prerequisites":[],"sections":[{"id":"s1","title":"Intro","position":1}],"hasDiagram":false},
			{"id":"graphs","order":2,"title":"Graphs","slug":"graphs"}]}`,
		catalog.ProblemsFile: `{"count":2,"problems":[
			{"id":"two-sum","title":"Two Sum","url":"u","platform":"leetcode","difficulty":"easy","pattern":"Hash Map","topicIds":["arrays"]},
			{"id":"islands","title":"Number of Islands","difficulty":"medium","pattern":null,"topicIds":["graphs"]}]}`,
		catalog.ConceptsFile:  `{"concepts":[{"id":"arrays-001","topicId":"arrays","title":"Basics","sectionNum":"1.1","level":1,"checklist":["a"],"complexity":null}]}`,
		catalog.ResourcesFile: `{"resources":[{"id":"r1","title":"Video","url":"https://x","type":"video","topicIds":["arrays"]}]}`,
	}
}

func TestNew_FirstDuplicateWins(t *testing.T) {
	topics := []models.Topic{
		{ID: "graphs", Order: 1, Title: "Graphs"},
		{ID: "graphs", Order: 2, Title: "Graphs Again"},
	}
	problems := []models.Problem{
		{ID: "num-islands", Title: "Number of Islands", Difficulty: models.DifficultyMedium, TopicIDs: []string{"graphs"}},
		{ID: "num-islands", Title: "Islands Copy", Difficulty: models.DifficultyHard, TopicIDs: []string{"graphs"}},
	}
	c := catalog.New(topics, problems, nil, nil, nil)

	require.Len(t, c.Topics(), 1)
	topic, ok := c.Topic("graphs")
	require.True(t, ok)
	assert.Equal(t, "Graphs", topic.Title)

	require.Len(t, c.Problems(), 1)
	p, ok := c.Problem("num-islands")
	require.True(t, ok)
	assert.Equal(t, "Number of Islands", p.Title)
	assert.Len(t, c.ProblemsByTopic("graphs"), 1)
	assert.Equal(t, 1, c.Stats().ProblemCount)
}

func TestLoad_ValidFixtures(t *testing.T) {
	c, err := catalog.Load(context.Background(), fixtureFS(validFiles()))
	require.NoError(t, err)

	assert.Empty(t, c.Quarantined())
	assert.Equal(t, catalog.Meta{Version: "2.1.0", GeneratedAt: "2026-01-01"}, c.Meta())
	assert.Len(t, c.Topics(), 2)
	assert.Len(t, c.Problems(), 2)
	assert.Len(t, c.Concepts(), 1)
	assert.Len(t, c.Resources(), 1)
	assert.Empty(t, c.Companies())

	p, ok := c.Problem("islands")
	require.True(t, ok)
	assert.Nil(t, p.Pattern)
	assert.Equal(t, models.DifficultyMedium, p.Difficulty)
}

func TestLoad_QuarantinesMalformedEntries(t *testing.T) {
	files := validFiles()
	files[catalog.ProblemsFile] = `{"problems":[
		{"id":"two-sum","title":"Two Sum","difficulty":"easy","topicIds":["arrays"]},
		{"id":"bad-difficulty","title":"Bad","difficulty":"impossible","topicIds":["arrays"]},
		{"title":"No ID","difficulty":"easy","topicIds":["arrays"]},
		"not an object",
		{"id":"two-sum","title":"Two Sum again","difficulty":"hard","topicIds":["arrays"]}]}`
	files[catalog.CompaniesFile] = `{"companies":[
		{"id":"google","name":"Google","tier":"s-tier","problems":[{"leetcodeId":1,"title":"Two Sum"}]},
		{"id":"broken","name":"Broken","problems":[{"leetcodeId":"one"}]}]}`

	c, err := catalog.Load(context.Background(), fixtureFS(files))
	require.NoError(t, err)

	require.Len(t, c.Problems(), 1)
	assert.Equal(t, "Two Sum", c.Problems()[0].Title)
	require.Len(t, c.Companies(), 1)

	q := c.Quarantined()
	require.Len(t, q, 5)
	assert.Equal(t, catalog.Quarantine{File: catalog.ProblemsFile, Index: 1, ID: "bad-difficulty", Reason: q[0].Reason}, q[0])
	assert.Equal(t, 2, q[1].Index)
	assert.Equal(t, 3, q[2].Index)
	assert.Equal(t, "duplicate id", q[3].Reason)
	assert.Equal(t, catalog.CompaniesFile, q[4].File)
	assert.Equal(t, "broken", q[4].ID)
}

func TestLoad_FailsOnBrokenFile(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		body  string
		match string
	}{
		{name: "not json", file: catalog.TopicsFile, body: `{"topics": [`, match: "parse topics.json"},
		{name: "missing list", file: catalog.ConceptsFile, body: `{"version":"1"}`, match: "validate concepts.json"},
		{name: "list not array", file: catalog.ResourcesFile, body: `{"resources":{}}`, match: "validate resources.json"},
		{name: "bad envelope field", file: catalog.ProblemsFile, body: `{"count":"many","problems":[]}`, match: "validate problems.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := validFiles()
			files[tt.file] = tt.body
			_, err := catalog.Load(context.Background(), fixtureFS(files))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.match), err.Error())
		})
	}
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	files := validFiles()
	delete(files, catalog.TopicsFile)
	_, err := catalog.Load(context.Background(), fixtureFS(files))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read topics.json")
}
