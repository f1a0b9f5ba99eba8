package models

import "time"

// ChapterRead records one chapter the learner has read.
type ChapterRead struct {
	Completed bool      `json:"completed"`
	LastRead  time.Time `json:"lastRead"`
}

// ReadingProgress maps topic ID to chapter path to read state.
type ReadingProgress map[string]map[string]ChapterRead
