package models

import "time"

type Stage string

const (
	StageRequirements Stage = "requirements"
	StageDesign       Stage = "design"
	StageDevelopment  Stage = "development"
	StageTesting      Stage = "testing"
	StageDeployment   Stage = "deployment"
)

// Stages lists the lifecycle in order.
var Stages = []Stage{
	StageRequirements,
	StageDesign,
	StageDevelopment,
	StageTesting,
	StageDeployment,
}

func (s Stage) Valid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Artifacts is stored as a single JSON document per project.
// Every slot is nil until first written.
type Artifacts struct {
	Requirements RequirementsArtifacts `json:"requirements"`
	Design       DesignArtifacts       `json:"design"`
	Development  DevelopmentArtifacts  `json:"development"`
	Testing      TestingArtifacts      `json:"testing"`
	Deployment   DeploymentArtifacts   `json:"deployment"`
}

type RequirementsArtifacts struct {
	PRD           *DocumentArtifact    `json:"prd"`
	UserStories   *UserStoriesArtifact `json:"userStories"`
	TechnicalSpec *DocumentArtifact    `json:"technicalSpec"`
}

type DesignArtifacts struct {
	UI           *DocumentArtifact     `json:"ui"`
	Database     *SchemaArtifact       `json:"database"`
	API          *APISpecArtifact      `json:"api"`
	Architecture *ArchitectureArtifact `json:"architecture"`
}

type DevelopmentArtifacts struct {
	Frontend *CodeArtifact       `json:"frontend"`
	Backend  *CodeArtifact       `json:"backend"`
	Database *MigrationsArtifact `json:"database"`
}

type TestingArtifacts struct {
	UnitTests        *TestArtifact `json:"unitTests"`
	IntegrationTests *TestArtifact `json:"integrationTests"`
	UITests          *TestArtifact `json:"uiTests"`
}

type DeploymentArtifacts struct {
	Docker     *DockerArtifact `json:"docker"`
	CICD       *ConfigArtifact `json:"cicd"`
	Monitoring *ConfigArtifact `json:"monitoring"`
}

type DocumentArtifact struct {
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type UserStory struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// UserStoriesArtifact keeps the submitted JSON verbatim next to the parsed stories.
type UserStoriesArtifact struct {
	Content     string      `json:"content"`
	Stories     []UserStory `json:"stories"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

type SchemaArtifact struct {
	Schema      string    `json:"schema"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type APISpecArtifact struct {
	Spec        string    `json:"spec"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ArchitectureArtifact struct {
	Diagram     string    `json:"diagram"`
	Description string    `json:"description"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type CodeArtifact struct {
	Code        string    `json:"code"`
	Framework   string    `json:"framework"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type MigrationsArtifact struct {
	Migrations  string    `json:"migrations"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type TestArtifact struct {
	Code        string    `json:"code"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type DockerArtifact struct {
	Dockerfile  string    `json:"dockerfile"`
	Compose     string    `json:"compose"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ConfigArtifact struct {
	Config      string    `json:"config"`
	LastUpdated time.Time `json:"lastUpdated"`
}
