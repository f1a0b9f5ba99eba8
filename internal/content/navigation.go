// Package content reads the markdown study material: a manifest describing
// each topic's chapter tree, and the chapters themselves.
package content

import "github.com/vytor/dsamastery/internal/models"

// FlattenChapters lists chapters depth-first in manifest order, skipping
// section nodes.
func FlattenChapters(items []models.ContentItem) []models.ContentItem {
	var out []models.ContentItem
	var walk func([]models.ContentItem)
	walk = func(items []models.ContentItem) {
		for _, it := range items {
			switch it.Type {
			case models.ContentChapter:
				out = append(out, it)
			case models.ContentSection:
				walk(it.Children)
			}
		}
	}
	walk(items)
	return out
}

// FindChapter locates a chapter by path anywhere in the tree.
func FindChapter(items []models.ContentItem, path string) (models.ContentItem, bool) {
	for _, it := range FlattenChapters(items) {
		if it.Path == path {
			return it, true
		}
	}
	return models.ContentItem{}, false
}

// Adjacent holds the chapters either side of a chapter in reading order.
type Adjacent struct {
	Prev *models.ContentItem `json:"prev"`
	Next *models.ContentItem `json:"next"`
}

// AdjacentChapters returns the previous and next chapters around path. An
// unknown path yields no previous chapter and the first chapter as next.
func AdjacentChapters(items []models.ContentItem, path string) Adjacent {
	chapters := FlattenChapters(items)
	idx := -1
	for i, c := range chapters {
		if c.Path == path {
			idx = i
			break
		}
	}

	var adj Adjacent
	if idx > 0 {
		prev := chapters[idx-1]
		adj.Prev = &prev
	}
	if idx < len(chapters)-1 {
		next := chapters[idx+1]
		adj.Next = &next
	}
	return adj
}
