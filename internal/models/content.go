package models

type ContentItemType string

const (
	ContentChapter ContentItemType = "chapter"
	ContentSection ContentItemType = "section"
)

// ContentItem is either a chapter (leaf) or a section holding children.
type ContentItem struct {
	Type              ContentItemType `json:"type"`
	Name              string          `json:"name"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Path              string          `json:"path"`
	Size              int             `json:"size,omitempty"`
	EstimatedReadTime int             `json:"estimatedReadTime,omitempty"`
	Children          []ContentItem   `json:"children,omitempty"`
}

type TopicContentStats struct {
	Sections int `json:"sections"`
	Chapters int `json:"chapters"`
}

type TopicContent struct {
	ID         string            `json:"id"`
	FolderName string            `json:"folderName"`
	Chapters   []ContentItem     `json:"chapters"`
	Stats      TopicContentStats `json:"stats"`
}

type ManifestStats struct {
	TotalTopics   int `json:"totalTopics"`
	TotalSections int `json:"totalSections"`
	TotalChapters int `json:"totalChapters"`
	TotalSize     int `json:"totalSize"`
}

type ContentManifest struct {
	Version     string                  `json:"version"`
	GeneratedAt string                  `json:"generatedAt"`
	Topics      map[string]TopicContent `json:"topics"`
	Stats       ManifestStats           `json:"stats"`
}
