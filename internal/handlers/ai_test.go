package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/dto"
	"github.com/irondev/iron-dev-agent/internal/repository"
	"github.com/irondev/iron-dev-agent/internal/services"
)

func (suite *HandlersTestSuite) TestGenerate_CreatesProjectWhenNoneGiven() {
	user := suite.createTestUser("owner")

	c, w := suite.createAuthContext(http.MethodPost, "/api/ai/generate", dto.GenerateRequest{
		Prompt: "an e-commerce app",
		Type:   "prd",
	}, user.ID)
	suite.ai.Generate(c)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal("# Shop PRD", body["content"])
	suite.Equal(true, body["projectCreated"])
	suite.Equal("fresh", body["mode"])

	projects, _, err := suite.projectService.ListProjects(user.ID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(projects[0].ID.String(), body["projectId"])
	suite.Equal("an e-commerce app", projects[0].Description)
}

func (suite *HandlersTestSuite) TestGenerate_Validation() {
	user := suite.createTestUser("owner")

	tests := []struct {
		name string
		req  dto.GenerateRequest
	}{
		{"missing prompt", dto.GenerateRequest{Type: "prd"}},
		{"missing type", dto.GenerateRequest{Prompt: "x"}},
		{"unknown type", dto.GenerateRequest{Prompt: "x", Type: "poem"}},
		{"stage mismatch", dto.GenerateRequest{Prompt: "x", Type: "prd", Stage: "design"}},
		{"bad project id", dto.GenerateRequest{Prompt: "x", Type: "prd", ProjectID: "42"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			c, w := suite.createAuthContext(http.MethodPost, "/api/ai/generate", tt.req, user.ID)
			suite.ai.Generate(c)
			suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
		})
	}
	suite.Empty(suite.generator.prompts)
}

func (suite *HandlersTestSuite) TestGenerate_ForeignProject() {
	owner := suite.createTestUser("owner")
	stranger := suite.createTestUser("stranger")
	project := suite.createTestProject("Demo", owner.ID)

	c, w := suite.createAuthContext(http.MethodPost, "/api/ai/generate", dto.GenerateRequest{
		Prompt:    "x",
		Type:      "prd",
		ProjectID: project.ID.String(),
	}, stranger.ID)
	suite.ai.Generate(c)

	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")
}

func (suite *HandlersTestSuite) TestGenerate_UpstreamFailurePassesMessageThrough() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)
	suite.generator.err = &services.GenerationError{Provider: "anthropic", Err: errors.New("overloaded_error: Overloaded")}

	c, w := suite.createAuthContext(http.MethodPost, "/api/ai/generate", dto.GenerateRequest{
		Prompt:    "x",
		Type:      "prd",
		ProjectID: project.ID.String(),
	}, user.ID)
	suite.ai.Generate(c)

	suite.assertError(w, http.StatusInternalServerError, "GENERATION_FAILED")
	suite.Equal("overloaded_error: Overloaded", suite.decode(w)["error"])
}

func (suite *HandlersTestSuite) TestGenerate_NoProvider() {
	user := suite.createTestUser("owner")
	projectRepo := repository.NewProjectRepository(suite.db)
	artifactService := services.NewArtifactService(suite.projectService, projectRepo, suite.store, zap.NewNop())
	handler := NewAIHandler(services.NewGenerationService(suite.projectService, artifactService, nil, zap.NewNop()))

	c, w := suite.createAuthContext(http.MethodPost, "/api/ai/generate", dto.GenerateRequest{
		Prompt: "x",
		Type:   "prd",
	}, user.ID)
	handler.Generate(c)

	suite.assertError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}
