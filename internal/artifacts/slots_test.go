package artifacts

import (
	"testing"
	"time"

	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_CoversSchema(t *testing.T) {
	perStage := map[models.Stage]int{}
	for _, s := range All() {
		perStage[s.Stage]++
	}

	assert.Equal(t, 3, perStage[models.StageRequirements])
	assert.Equal(t, 4, perStage[models.StageDesign])
	assert.Equal(t, 3, perStage[models.StageDevelopment])
	assert.Equal(t, 3, perStage[models.StageTesting])
	assert.Equal(t, 3, perStage[models.StageDeployment])
}

func TestSlot_SetThenGet(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, s := range All() {
		t.Run(s.Key.String(), func(t *testing.T) {
			var a models.Artifacts

			_, ok := s.Get(&a)
			require.False(t, ok, "slot should start empty")

			content := "content for " + s.Key.String()
			if s.Type == TypeUserStories {
				content = `[{"title":"Checkout","description":"pay","priority":"high","status":"todo"}]`
			}

			require.NoError(t, s.Set(&a, content, at))

			got, ok := s.Get(&a)
			require.True(t, ok)
			assert.Equal(t, content, got.Content)
			assert.Equal(t, at, got.LastUpdated)
		})
	}
}

func TestSlot_SetKeepsSecondaryFields(t *testing.T) {
	a := models.Artifacts{}
	a.Development.Frontend = &models.CodeArtifact{Code: "old", Framework: "react"}
	a.Deployment.Docker = &models.DockerArtifact{Dockerfile: "FROM a", Compose: "services: {}"}

	frontend, err := Lookup("development", "frontend")
	require.NoError(t, err)
	require.NoError(t, frontend.Set(&a, "new", time.Now()))
	assert.Equal(t, "react", a.Development.Frontend.Framework)
	assert.Equal(t, "new", a.Development.Frontend.Code)

	docker, err := Lookup("deployment", "docker")
	require.NoError(t, err)
	require.NoError(t, docker.Set(&a, "FROM b", time.Now()))
	assert.Equal(t, "services: {}", a.Deployment.Docker.Compose)
}

func TestSlot_UserStoriesParsed(t *testing.T) {
	s, err := Lookup("requirements", "userStories")
	require.NoError(t, err)

	var a models.Artifacts
	require.NoError(t, s.Set(&a, `[{"title":"A"},{"title":"B"}]`, time.Now()))
	require.Len(t, a.Requirements.UserStories.Stories, 2)
	assert.Equal(t, "B", a.Requirements.UserStories.Stories[1].Title)

	require.NoError(t, s.Set(&a, "As a shopper I want a cart", time.Now()))
	assert.Equal(t, "As a shopper I want a cart", a.Requirements.UserStories.Content)
	assert.Empty(t, a.Requirements.UserStories.Stories)
}

func TestLookup(t *testing.T) {
	s, err := Lookup("testing", "unitTest")
	require.NoError(t, err)
	assert.Equal(t, TypeUnitTests, s.Type)

	_, err = Lookup("design", "prd")
	require.ErrorIs(t, err, ErrInvalidSlot)

	_, err = Lookup("nowhere", "prd")
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestSlot_FileName(t *testing.T) {
	prd, _ := Lookup("requirements", "prd")
	ui, _ := Lookup("design", "ui")
	api, _ := Lookup("design", "api")

	assert.Equal(t, "PRD.md", prd.FileName())
	assert.Equal(t, "UI.html", ui.FileName())
	assert.Equal(t, "design-api.txt", api.FileName())
}

func TestParseKind(t *testing.T) {
	cases := map[string]Key{
		"prd":        {Stage: models.StageRequirements, Type: TypePRD},
		"ui":         {Stage: models.StageDesign, Type: TypeUI},
		"code":       {Stage: models.StageDevelopment, Type: TypeFrontend},
		"test":       {Stage: models.StageTesting, Type: TypeUnitTests},
		"unitTest":   {Stage: models.StageTesting, Type: TypeUnitTests},
		"deployment": {Stage: models.StageDeployment, Type: TypeDocker},
	}
	for in, want := range cases {
		g, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, g.Slot.Key, in)
	}

	g, err := ParseKind("code")
	require.NoError(t, err)
	assert.True(t, g.UsesLanguage)

	_, err = ParseKind("poem")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestKinds_AllResolve(t *testing.T) {
	for _, k := range Kinds() {
		g, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, g.Kind)
		assert.NotNil(t, g.Slot.get)
	}
}
