package testutil

import (
	"testing"

	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/models"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// SampleCatalog is a small three-topic curriculum:
//
//	arrays-strings (order 1): concepts arrays-001, arrays-002;
//	  problems two-sum (easy), valid-anagram (easy), container-water (medium)
//	linked-lists (order 2): concept ll-001;
//	  problems reverse-list (easy), merge-k (hard)
//	graphs (order 3): concept graphs-001; problem num-islands (medium)
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	topics := []models.Topic{
		{ID: "graphs", Order: 3, Title: "Graphs", Slug: "graphs"},
		{ID: "arrays-strings", Order: 1, Title: "Arrays & Strings", Slug: "arrays-strings"},
		{ID: "linked-lists", Order: 2, Title: "Linked Lists", Slug: "linked-lists", Prerequisites: []string{"arrays-strings"}},
	}
	problems := []models.Problem{
		{ID: "two-sum", Title: "Two Sum", URL: "https://leetcode.com/problems/two-sum/", Platform: "leetcode", Difficulty: models.DifficultyEasy, Pattern: Ptr("Hash Map"), TopicIDs: []string{"arrays-strings"}},
		{ID: "valid-anagram", Title: "Valid Anagram", Platform: "leetcode", Difficulty: models.DifficultyEasy, Pattern: Ptr("Hash Map / Sorting"), TopicIDs: []string{"arrays-strings"}},
		{ID: "container-water", Title: "Container With Most Water", Platform: "leetcode", Difficulty: models.DifficultyMedium, Pattern: Ptr("Two Pointers"), TopicIDs: []string{"arrays-strings"}},
		{ID: "reverse-list", Title: "Reverse Linked List", Platform: "leetcode", Difficulty: models.DifficultyEasy, Pattern: Ptr("Linked List"), TopicIDs: []string{"linked-lists"}},
		{ID: "merge-k", Title: "Merge k Sorted Lists", Platform: "leetcode", Difficulty: models.DifficultyHard, Pattern: Ptr("Heap & Linked List"), TopicIDs: []string{"linked-lists"}},
		{ID: "num-islands", Title: "Number of Islands", Platform: "leetcode", Difficulty: models.DifficultyMedium, Pattern: Ptr("DFS, BFS"), TopicIDs: []string{"graphs"}},
	}
	concepts := []models.Concept{
		{ID: "arrays-001", TopicID: "arrays-strings", Title: "Array basics", SectionNum: "1.1", Level: 1},
		{ID: "arrays-002", TopicID: "arrays-strings", Title: "String builders", SectionNum: "1.2", Level: 1},
		{ID: "ll-001", TopicID: "linked-lists", Title: "Pointer manipulation", SectionNum: "2.1", Level: 1},
		{ID: "graphs-001", TopicID: "graphs", Title: "Adjacency lists", SectionNum: "3.1", Level: 1},
	}
	resources := []models.Resource{
		{ID: "neetcode-arrays", Title: "NeetCode Arrays", URL: "https://neetcode.io", Type: "video", Platform: "youtube", TopicIDs: []string{"arrays-strings"}},
		{ID: "graph-article", Title: "Graph Traversal", URL: "https://example.com/graphs", Type: "article", Platform: "other", TopicIDs: []string{"graphs"}},
	}
	companies := []models.Company{
		{ID: "acme", Name: "Acme", Tier: "tier-2", Problems: []models.CompanyProblem{{LeetcodeID: 206, Title: "Reverse Linked List"}}},
		{ID: "google", Name: "Google", Tier: "s-tier", Problems: []models.CompanyProblem{{LeetcodeID: 1, Title: "Two Sum"}, {LeetcodeID: 200, Title: "Number of Islands"}}},
		{ID: "meta", Name: "Meta", Tier: "tier-1", Problems: []models.CompanyProblem{{LeetcodeID: 1, Title: "Two Sum"}}},
		{ID: "startup", Name: "Startup", Tier: "unranked", Problems: []models.CompanyProblem{{LeetcodeID: 1, Title: "Two Sum"}}},
	}
	return catalog.New(topics, problems, concepts, resources, companies)
}
