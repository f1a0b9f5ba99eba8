package catalog

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
)

// Fixture file names inside the catalog directory.
const (
	TopicsFile    = "topics.json"
	ProblemsFile  = "problems.json"
	ConceptsFile  = "concepts.json"
	ResourcesFile = "resources.json"
	CompaniesFile = "company-problems.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type fixture struct {
	file     string
	listKey  string
	entry    string
	optional bool
}

var fixtures = []fixture{
	{file: TopicsFile, listKey: "topics", entry: "topic"},
	{file: ProblemsFile, listKey: "problems", entry: "problem"},
	{file: ConceptsFile, listKey: "concepts", entry: "concept"},
	{file: ResourcesFile, listKey: "resources", entry: "resource"},
	{file: CompaniesFile, listKey: "companies", entry: "company", optional: true},
}

type compiledSchemas struct {
	envelopes map[string]*jsonschema.Schema
	entries   map[string]*jsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     *compiledSchemas
	schemasErr  error
)

func loadSchemas() (*compiledSchemas, error) {
	schemasOnce.Do(func() {
		schemas, schemasErr = compileSchemas()
	})
	return schemas, schemasErr
}

func compileSchemas() (*compiledSchemas, error) {
	c := jsonschema.NewCompiler()
	for _, name := range []string{"envelope", "topic", "problem", "concept", "resource", "company"} {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}
		if err := c.AddResource(schemaURL(name), doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	// each file's envelope is the shared envelope plus its required list
	for _, fx := range fixtures {
		doc := map[string]any{
			"allOf":    []any{map[string]any{"$ref": schemaURL("envelope")}},
			"type":     "object",
			"required": []any{fx.listKey},
			"properties": map[string]any{
				fx.listKey: map[string]any{"type": "array"},
			},
		}
		if err := c.AddResource(schemaURL(fx.listKey+"-file"), doc); err != nil {
			return nil, fmt.Errorf("add envelope for %s: %w", fx.file, err)
		}
	}

	out := &compiledSchemas{
		envelopes: map[string]*jsonschema.Schema{},
		entries:   map[string]*jsonschema.Schema{},
	}
	for _, fx := range fixtures {
		env, err := c.Compile(schemaURL(fx.listKey + "-file"))
		if err != nil {
			return nil, fmt.Errorf("compile envelope for %s: %w", fx.file, err)
		}
		entry, err := c.Compile(schemaURL(fx.entry))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", fx.entry, err)
		}
		out.envelopes[fx.file] = env
		out.entries[fx.file] = entry
	}
	return out, nil
}

func schemaURL(name string) string {
	return "schema://dsamastery/" + name + ".json"
}

// Load reads and validates the catalog fixtures in fsys. A file that is
// missing (unless optional), not JSON, or fails its envelope schema fails the
// load; individual malformed or duplicate entries are quarantined and skipped.
func Load(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	compiled, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	l := &loader{fsys: fsys, schemas: compiled}
	var (
		topics    []models.Topic
		problems  []models.Problem
		concepts  []models.Concept
		resources []models.Resource
		companies []models.Company
		meta      Meta
	)

	for _, fx := range fixtures {
		env, entries, err := l.readFile(fx)
		if err != nil {
			if fx.optional && errors.Is(err, fs.ErrNotExist) {
				log.Debug("optional fixture %s not present", fx.file)
				continue
			}
			return nil, err
		}

		switch fx.file {
		case TopicsFile:
			meta = Meta{Version: env.Version, GeneratedAt: env.GeneratedAt}
			topics = decodeEntries[models.Topic](l, fx, entries, func(t models.Topic) string { return t.ID })
		case ProblemsFile:
			problems = decodeEntries[models.Problem](l, fx, entries, func(p models.Problem) string { return p.ID })
		case ConceptsFile:
			concepts = decodeEntries[models.Concept](l, fx, entries, func(c models.Concept) string { return c.ID })
		case ResourcesFile:
			resources = decodeEntries[models.Resource](l, fx, entries, func(r models.Resource) string { return r.ID })
		case CompaniesFile:
			companies = decodeEntries[models.Company](l, fx, entries, func(c models.Company) string { return c.ID })
		}
		if env.Count != nil && *env.Count != len(entries) {
			log.Warn("%s declares count=%d but holds %d entries", fx.file, *env.Count, len(entries))
		}
	}

	for _, q := range l.quarantined {
		log.Warn("quarantined %s[%d] id=%q: %s", q.File, q.Index, q.ID, q.Reason)
	}

	c := build(meta, topics, problems, concepts, resources, companies, l.quarantined)
	log.Info("catalog loaded: %d topics, %d problems, %d concepts, %d resources, %d companies, %d patterns (%d quarantined)",
		len(c.topics), len(c.problems), len(c.concepts), len(c.resources), len(c.companies), len(c.patterns), len(l.quarantined))
	return c, nil
}

type envelope struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generatedAt"`
	Count       *int   `json:"count"`
}

type loader struct {
	fsys        fs.FS
	schemas     *compiledSchemas
	quarantined []Quarantine
}

func (l *loader) readFile(fx fixture) (envelope, []json.RawMessage, error) {
	var env envelope

	raw, err := fs.ReadFile(l.fsys, fx.file)
	if err != nil {
		return env, nil, fmt.Errorf("read %s: %w", fx.file, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return env, nil, fmt.Errorf("parse %s: %w", fx.file, err)
	}
	if err := l.schemas.envelopes[fx.file].Validate(doc); err != nil {
		return env, nil, fmt.Errorf("validate %s: %w", fx.file, err)
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return env, nil, fmt.Errorf("decode %s: %w", fx.file, err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return env, nil, fmt.Errorf("decode %s: %w", fx.file, err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(body[fx.listKey], &entries); err != nil {
		return env, nil, fmt.Errorf("decode %s.%s: %w", fx.file, fx.listKey, err)
	}
	return env, entries, nil
}

func (l *loader) quarantine(fx fixture, index int, id, reason string) {
	l.quarantined = append(l.quarantined, Quarantine{File: fx.file, Index: index, ID: id, Reason: reason})
}

func decodeEntries[T any](l *loader, fx fixture, entries []json.RawMessage, idOf func(T) string) []T {
	schema := l.schemas.entries[fx.file]
	seen := map[string]bool{}
	out := make([]T, 0, len(entries))

	for i, raw := range entries {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			l.quarantine(fx, i, "", err.Error())
			continue
		}
		if err := schema.Validate(doc); err != nil {
			l.quarantine(fx, i, rawID(doc), err.Error())
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			l.quarantine(fx, i, rawID(doc), err.Error())
			continue
		}
		id := idOf(v)
		if seen[id] {
			l.quarantine(fx, i, id, "duplicate id")
			continue
		}
		seen[id] = true
		out = append(out, v)
	}
	return out
}

func rawID(doc any) string {
	if m, ok := doc.(map[string]any); ok {
		if id, ok := m["id"].(string); ok {
			return id
		}
	}
	return ""
}
