// Package artifacts holds the single authoritative mapping between
// (stage, type) pairs, the storage slots inside models.Artifacts, and the
// kinds of content the generator can produce.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/irondev/iron-dev-agent/internal/models"
)

type Type string

const (
	TypePRD              Type = "prd"
	TypeUserStories      Type = "userStories"
	TypeTechnicalSpec    Type = "technicalSpec"
	TypeUI               Type = "ui"
	TypeDatabase         Type = "database"
	TypeAPI              Type = "api"
	TypeArchitecture     Type = "architecture"
	TypeFrontend         Type = "frontend"
	TypeBackend          Type = "backend"
	TypeUnitTests        Type = "unitTests"
	TypeIntegrationTests Type = "integrationTests"
	TypeUITests          Type = "uiTests"
	TypeDocker           Type = "docker"
	TypeCICD             Type = "cicd"
	TypeMonitoring       Type = "monitoring"
)

const (
	LegacyPRDFile = "PRD.md"
	LegacyUIFile  = "UI.html"
)

var ErrInvalidSlot = errors.New("invalid stage/type combination")

// Key identifies a slot.
type Key struct {
	Stage models.Stage
	Type  Type
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Stage, k.Type)
}

// Content is the primary value of a slot.
type Content struct {
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Slot reads and writes the primary field of one artifact position.
type Slot struct {
	Key
	// LegacyFile is the mirror file name in the flat-file store, if any.
	LegacyFile string

	get func(a *models.Artifacts) (Content, bool)
	set func(a *models.Artifacts, content string, at time.Time) error
}

// Get returns the stored content. ok is false when the slot is empty.
func (s Slot) Get(a *models.Artifacts) (Content, bool) {
	c, ok := s.get(a)
	if !ok || c.Content == "" {
		return Content{}, false
	}
	return c, true
}

// Set overwrites the primary field and timestamp, keeping secondary fields.
func (s Slot) Set(a *models.Artifacts, content string, at time.Time) error {
	return s.set(a, content, at)
}

// FileName is used for downloads.
func (s Slot) FileName() string {
	if s.LegacyFile != "" {
		return s.LegacyFile
	}
	return fmt.Sprintf("%s-%s.txt", s.Stage, s.Type)
}

var (
	slotOrder []Key
	slots     = map[Key]Slot{}
)

func register(s Slot) {
	if _, dup := slots[s.Key]; dup {
		panic("artifacts: duplicate slot " + s.Key.String())
	}
	slotOrder = append(slotOrder, s.Key)
	slots[s.Key] = s
}

// Lookup resolves a (stage, type) pair. Type aliases are accepted.
func Lookup(stage, typ string) (Slot, error) {
	key := Key{Stage: models.Stage(stage), Type: canonicalType(typ)}
	s, ok := slots[key]
	if !ok {
		return Slot{}, fmt.Errorf("%w: %s/%s", ErrInvalidSlot, stage, typ)
	}
	return s, nil
}

// All returns every slot in schema order.
func All() []Slot {
	out := make([]Slot, 0, len(slotOrder))
	for _, k := range slotOrder {
		out = append(out, slots[k])
	}
	return out
}

var typeAliases = map[string]Type{
	"unitTest":        TypeUnitTests,
	"integrationTest": TypeIntegrationTests,
	"uiTest":          TypeUITests,
	"userStory":       TypeUserStories,
}

func canonicalType(typ string) Type {
	if t, ok := typeAliases[typ]; ok {
		return t
	}
	return Type(typ)
}

func document(stage models.Stage, typ Type, legacy string, field func(a *models.Artifacts) **models.DocumentArtifact) Slot {
	return Slot{
		Key:        Key{Stage: stage, Type: typ},
		LegacyFile: legacy,
		get: func(a *models.Artifacts) (Content, bool) {
			d := *field(a)
			if d == nil {
				return Content{}, false
			}
			return Content{Content: d.Content, LastUpdated: d.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			*field(a) = &models.DocumentArtifact{Content: content, LastUpdated: at}
			return nil
		},
	}
}

func code(stage models.Stage, typ Type, field func(a *models.Artifacts) **models.CodeArtifact) Slot {
	return Slot{
		Key: Key{Stage: stage, Type: typ},
		get: func(a *models.Artifacts) (Content, bool) {
			c := *field(a)
			if c == nil {
				return Content{}, false
			}
			return Content{Content: c.Code, LastUpdated: c.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			next := &models.CodeArtifact{Code: content, LastUpdated: at}
			if prev := *field(a); prev != nil {
				next.Framework = prev.Framework
			}
			*field(a) = next
			return nil
		},
	}
}

func test(typ Type, field func(a *models.Artifacts) **models.TestArtifact) Slot {
	return Slot{
		Key: Key{Stage: models.StageTesting, Type: typ},
		get: func(a *models.Artifacts) (Content, bool) {
			t := *field(a)
			if t == nil {
				return Content{}, false
			}
			return Content{Content: t.Code, LastUpdated: t.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			*field(a) = &models.TestArtifact{Code: content, LastUpdated: at}
			return nil
		},
	}
}

func config(typ Type, field func(a *models.Artifacts) **models.ConfigArtifact) Slot {
	return Slot{
		Key: Key{Stage: models.StageDeployment, Type: typ},
		get: func(a *models.Artifacts) (Content, bool) {
			c := *field(a)
			if c == nil {
				return Content{}, false
			}
			return Content{Content: c.Config, LastUpdated: c.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			*field(a) = &models.ConfigArtifact{Config: content, LastUpdated: at}
			return nil
		},
	}
}

func init() {
	register(document(models.StageRequirements, TypePRD, LegacyPRDFile, func(a *models.Artifacts) **models.DocumentArtifact {
		return &a.Requirements.PRD
	}))
	register(Slot{
		Key: Key{Stage: models.StageRequirements, Type: TypeUserStories},
		get: func(a *models.Artifacts) (Content, bool) {
			u := a.Requirements.UserStories
			if u == nil {
				return Content{}, false
			}
			return Content{Content: u.Content, LastUpdated: u.LastUpdated}, true
		},
		// Content is kept verbatim. Stories is filled only when it parses as a story array.
		set: func(a *models.Artifacts, content string, at time.Time) error {
			var stories []models.UserStory
			if err := json.Unmarshal([]byte(content), &stories); err != nil {
				stories = nil
			}
			a.Requirements.UserStories = &models.UserStoriesArtifact{
				Content:     content,
				Stories:     stories,
				LastUpdated: at,
			}
			return nil
		},
	})
	register(document(models.StageRequirements, TypeTechnicalSpec, "", func(a *models.Artifacts) **models.DocumentArtifact {
		return &a.Requirements.TechnicalSpec
	}))

	register(document(models.StageDesign, TypeUI, LegacyUIFile, func(a *models.Artifacts) **models.DocumentArtifact {
		return &a.Design.UI
	}))
	register(Slot{
		Key: Key{Stage: models.StageDesign, Type: TypeDatabase},
		get: func(a *models.Artifacts) (Content, bool) {
			s := a.Design.Database
			if s == nil {
				return Content{}, false
			}
			return Content{Content: s.Schema, LastUpdated: s.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			a.Design.Database = &models.SchemaArtifact{Schema: content, LastUpdated: at}
			return nil
		},
	})
	register(Slot{
		Key: Key{Stage: models.StageDesign, Type: TypeAPI},
		get: func(a *models.Artifacts) (Content, bool) {
			s := a.Design.API
			if s == nil {
				return Content{}, false
			}
			return Content{Content: s.Spec, LastUpdated: s.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			a.Design.API = &models.APISpecArtifact{Spec: content, LastUpdated: at}
			return nil
		},
	})
	register(Slot{
		Key: Key{Stage: models.StageDesign, Type: TypeArchitecture},
		get: func(a *models.Artifacts) (Content, bool) {
			s := a.Design.Architecture
			if s == nil {
				return Content{}, false
			}
			return Content{Content: s.Diagram, LastUpdated: s.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			next := &models.ArchitectureArtifact{Diagram: content, LastUpdated: at}
			if prev := a.Design.Architecture; prev != nil {
				next.Description = prev.Description
			}
			a.Design.Architecture = next
			return nil
		},
	})

	register(code(models.StageDevelopment, TypeFrontend, func(a *models.Artifacts) **models.CodeArtifact {
		return &a.Development.Frontend
	}))
	register(code(models.StageDevelopment, TypeBackend, func(a *models.Artifacts) **models.CodeArtifact {
		return &a.Development.Backend
	}))
	register(Slot{
		Key: Key{Stage: models.StageDevelopment, Type: TypeDatabase},
		get: func(a *models.Artifacts) (Content, bool) {
			m := a.Development.Database
			if m == nil {
				return Content{}, false
			}
			return Content{Content: m.Migrations, LastUpdated: m.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			a.Development.Database = &models.MigrationsArtifact{Migrations: content, LastUpdated: at}
			return nil
		},
	})

	register(test(TypeUnitTests, func(a *models.Artifacts) **models.TestArtifact {
		return &a.Testing.UnitTests
	}))
	register(test(TypeIntegrationTests, func(a *models.Artifacts) **models.TestArtifact {
		return &a.Testing.IntegrationTests
	}))
	register(test(TypeUITests, func(a *models.Artifacts) **models.TestArtifact {
		return &a.Testing.UITests
	}))

	register(Slot{
		Key: Key{Stage: models.StageDeployment, Type: TypeDocker},
		get: func(a *models.Artifacts) (Content, bool) {
			d := a.Deployment.Docker
			if d == nil {
				return Content{}, false
			}
			return Content{Content: d.Dockerfile, LastUpdated: d.LastUpdated}, true
		},
		set: func(a *models.Artifacts, content string, at time.Time) error {
			next := &models.DockerArtifact{Dockerfile: content, LastUpdated: at}
			if prev := a.Deployment.Docker; prev != nil {
				next.Compose = prev.Compose
			}
			a.Deployment.Docker = next
			return nil
		},
	})
	register(config(TypeCICD, func(a *models.Artifacts) **models.ConfigArtifact {
		return &a.Deployment.CICD
	}))
	register(config(TypeMonitoring, func(a *models.Artifacts) **models.ConfigArtifact {
		return &a.Deployment.Monitoring
	}))
}
