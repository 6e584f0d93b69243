package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/dto"
	"github.com/irondev/iron-dev-agent/internal/models"
)

func (suite *HandlersTestSuite) TestCreateProject() {
	user := suite.createTestUser("owner")

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", dto.CreateProjectRequest{
		Name:        "Demo",
		Description: "A demo project",
		Tags:        []string{"web", "web", " shop "},
	}, user.ID)
	suite.projects.CreateProject(c)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	project := suite.decode(w)["project"].(map[string]interface{})
	suite.Equal("Demo", project["name"])
	suite.Equal("planning", project["status"])
	suite.Equal("requirements", project["currentStage"])
	suite.Equal([]interface{}{"web", "shop"}, project["tags"])

	collaborators := project["collaborators"].([]interface{})
	suite.Require().Len(collaborators, 1)
	owner := collaborators[0].(map[string]interface{})
	suite.Equal("owner", owner["role"])
	suite.EqualValues(user.ID, owner["userId"])

	suite.True(suite.store.Exists(project["id"].(string)))
}

func (suite *HandlersTestSuite) TestCreateProject_InvalidBody() {
	user := suite.createTestUser("owner")

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", map[string]string{"description": "no name"}, user.ID)
	suite.projects.CreateProject(c)

	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}

func (suite *HandlersTestSuite) TestListProjects_OmitsArtifacts() {
	user := suite.createTestUser("owner")
	other := suite.createTestUser("other")
	suite.createTestProject("Mine", user.ID)
	suite.createTestProject("Theirs", other.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/projects", nil, user.ID)
	suite.projects.ListProjects(c)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	projects := body["projects"].([]interface{})
	suite.Require().Len(projects, 1)
	suite.Equal("Mine", projects[0].(map[string]interface{})["name"])
	suite.NotContains(projects[0], "artifacts")
	suite.NotContains(body, "pagination")
}

func (suite *HandlersTestSuite) TestListProjects_Paginated() {
	user := suite.createTestUser("owner")
	for i := 0; i < 3; i++ {
		suite.createTestProject("P"+strconv.Itoa(i), user.ID)
	}

	c, w := suite.createAuthContext(http.MethodGet, "/api/projects?page=2&limit=2", nil, user.ID)
	suite.projects.ListProjects(c)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["projects"], 1)
	pagination := body["pagination"].(map[string]interface{})
	suite.EqualValues(2, pagination["page"])
	suite.EqualValues(3, pagination["total"])
}

func (suite *HandlersTestSuite) TestGetProject_IncludesArtifacts() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Demo", user.ID)

	c, w := suite.createAuthContext(http.MethodGet, "/api/projects/"+project.ID.String(), nil, user.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.GetProject(c)

	suite.Require().Equal(http.StatusOK, w.Code)
	got := suite.decode(w)["project"].(map[string]interface{})
	suite.Equal(project.ID.String(), got["id"])
	suite.Contains(got, "artifacts")
}

func (suite *HandlersTestSuite) TestUpdateProject() {
	owner := suite.createTestUser("owner")
	viewer := suite.createTestUser("viewer")
	project := suite.createTestProject("Demo", owner.ID)
	suite.addCollaborator(project.ID, owner.ID, "viewer", models.CollaboratorRoleViewer)

	status := "design"
	c, w := suite.createAuthContext(http.MethodPut, "/api/projects/"+project.ID.String(), dto.UpdateProjectRequest{Status: &status}, viewer.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.UpdateProject(c)
	suite.assertError(w, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS")

	c, w = suite.createAuthContext(http.MethodPut, "/api/projects/"+project.ID.String(), dto.UpdateProjectRequest{Status: &status}, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.UpdateProject(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("design", suite.decode(w)["project"].(map[string]interface{})["status"])

	bad := "archived"
	c, w = suite.createAuthContext(http.MethodPut, "/api/projects/"+project.ID.String(), dto.UpdateProjectRequest{Status: &bad}, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.UpdateProject(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}

func (suite *HandlersTestSuite) TestDeleteProject_OwnerOnly() {
	owner := suite.createTestUser("owner")
	admin := suite.createTestUser("admin")
	project := suite.createTestProject("Demo", owner.ID)
	suite.addCollaborator(project.ID, owner.ID, "admin", models.CollaboratorRoleAdmin)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID.String(), nil, admin.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.DeleteProject(c)
	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID.String(), nil, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.DeleteProject(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(true, suite.decode(w)["success"])
	suite.False(suite.store.Exists(project.ID.String()))
}

func (suite *HandlersTestSuite) TestCollaborators() {
	owner := suite.createTestUser("owner")
	dev := suite.createTestUser("dev")
	project := suite.createTestProject("Demo", owner.ID)

	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/"+project.ID.String()+"/collaborators",
		dto.AddCollaboratorRequest{Username: "dev", Role: "developer"}, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.AddCollaborator(c)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	collaborator := suite.decode(w)["collaborator"].(map[string]interface{})
	suite.Equal("developer", collaborator["role"])
	suite.Equal("dev", collaborator["user"].(map[string]interface{})["username"])

	// duplicate
	c, w = suite.createAuthContext(http.MethodPost, "/api/projects/"+project.ID.String()+"/collaborators",
		dto.AddCollaboratorRequest{Username: "dev", Role: "viewer"}, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.AddCollaborator(c)
	suite.assertError(w, http.StatusConflict, "ALREADY_EXISTS")

	// unknown user
	c, w = suite.createAuthContext(http.MethodPost, "/api/projects/"+project.ID.String()+"/collaborators",
		dto.AddCollaboratorRequest{Username: "ghost", Role: "viewer"}, owner.ID)
	suite.setProjectContext(c, project.ID)
	suite.projects.AddCollaborator(c)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")

	// the owner cannot be removed
	c, w = suite.createAuthContext(http.MethodDelete, "/", nil, owner.ID)
	suite.setProjectContext(c, project.ID, gin.Param{Key: "userId", Value: strconv.FormatUint(owner.ID, 10)})
	suite.projects.RemoveCollaborator(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")

	c, w = suite.createAuthContext(http.MethodDelete, "/", nil, owner.ID)
	suite.setProjectContext(c, project.ID, gin.Param{Key: "userId", Value: strconv.FormatUint(dev.ID, 10)})
	suite.projects.RemoveCollaborator(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	c, w = suite.createAuthContext(http.MethodDelete, "/", nil, owner.ID)
	suite.setProjectContext(c, project.ID, gin.Param{Key: "userId", Value: "abc"})
	suite.projects.RemoveCollaborator(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}
