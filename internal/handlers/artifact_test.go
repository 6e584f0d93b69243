package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/dto"
)

func stageType(stage, typ string) []gin.Param {
	return []gin.Param{{Key: "stage", Value: stage}, {Key: "type", Value: typ}}
}

func (suite *HandlersTestSuite) TestUpdateThenGetArtifact() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)

	c, w := suite.createAuthContext(http.MethodPut, "/", dto.UpdateArtifactRequest{Content: "# PRD v1"}, user.ID)
	suite.setProjectContext(c, project.ID, stageType("requirements", "prd")...)
	suite.artifacts.UpdateArtifact(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("Artifact updated successfully", suite.decode(w)["message"])

	c, w = suite.createAuthContext(http.MethodGet, "/", nil, user.ID)
	suite.setProjectContext(c, project.ID, stageType("requirements", "prd")...)
	suite.artifacts.GetArtifact(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	artifact := suite.decode(w)["artifact"].(map[string]interface{})
	suite.Equal("# PRD v1", artifact["content"])
	suite.NotEmpty(artifact["lastUpdated"])

	mirrored, err := suite.store.Get(project.ID.String())
	suite.Require().NoError(err)
	suite.Equal("# PRD v1", mirrored.PRD)
}

func (suite *HandlersTestSuite) TestUpdateArtifact_InvalidSlot() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)

	c, w := suite.createAuthContext(http.MethodPut, "/", dto.UpdateArtifactRequest{Content: "x"}, user.ID)
	suite.setProjectContext(c, project.ID, stageType("requirements", "ui")...)
	suite.artifacts.UpdateArtifact(c)

	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}

func (suite *HandlersTestSuite) TestUpdateArtifact_NonCollaborator() {
	owner := suite.createTestUser("owner")
	stranger := suite.createTestUser("stranger")
	project := suite.createTestProject("Demo", owner.ID)

	c, w := suite.createAuthContext(http.MethodPut, "/", dto.UpdateArtifactRequest{Content: "x"}, stranger.ID)
	suite.setProjectContext(c, project.ID, stageType("requirements", "prd")...)
	suite.artifacts.UpdateArtifact(c)

	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")
}

func (suite *HandlersTestSuite) TestGetArtifact_Empty() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/", nil, user.ID)
	suite.setProjectContext(c, project.ID, stageType("design", "api")...)
	suite.artifacts.GetArtifact(c)

	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}

func (suite *HandlersTestSuite) TestDownloadArtifact() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)

	tests := []struct {
		stage, typ, content string
		filename, mime      string
	}{
		{"design", "ui", "<!DOCTYPE html><html><body>hi</body></html>", `"UI.html"`, "text/html"},
		{"requirements", "prd", "# Title\n\nBody", `"PRD.md"`, "text/plain"},
		{"deployment", "cicd", "name: ci\non: push\n", `"deployment-cicd.txt"`, "text/plain"},
	}

	for _, tt := range tests {
		suite.Run(tt.typ, func() {
			c, w := suite.createAuthContext(http.MethodPut, "/", dto.UpdateArtifactRequest{Content: tt.content}, user.ID)
			suite.setProjectContext(c, project.ID, stageType(tt.stage, tt.typ)...)
			suite.artifacts.UpdateArtifact(c)
			suite.Require().Equal(http.StatusOK, w.Code)

			c, w = suite.createAuthContext(http.MethodGet, "/", nil, user.ID)
			suite.setProjectContext(c, project.ID, stageType(tt.stage, tt.typ)...)
			suite.artifacts.DownloadArtifact(c)

			suite.Require().Equal(http.StatusOK, w.Code)
			suite.Equal("attachment; filename="+tt.filename, w.Header().Get("Content-Disposition"))
			suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), tt.mime), w.Header().Get("Content-Type"))
			suite.Equal(tt.content, w.Body.String())
		})
	}
}
