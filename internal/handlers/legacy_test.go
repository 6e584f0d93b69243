package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/dto"
	"github.com/irondev/iron-dev-agent/internal/legacy"
	"github.com/irondev/iron-dev-agent/internal/services"
)

func jsonRequest(method, path string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *HandlersTestSuite) seedLegacyProject(prd string) string {
	id := legacy.NewID()
	slot, err := artifacts.Lookup("requirements", "prd")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Write(id, slot, prd))
	return id
}

func (suite *HandlersTestSuite) TestLegacyListGetDelete() {
	id := suite.seedLegacyProject("# Old PRD")

	r := suite.sessionRouter(http.MethodGet, "/api/projects", suite.legacy.ListProjects)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	suite.Require().Equal(http.StatusOK, w.Code)
	projects := suite.decode(w)["projects"].([]interface{})
	suite.Require().Len(projects, 1)
	summary := projects[0].(map[string]interface{})
	suite.Equal(id, summary["id"])
	suite.Equal(true, summary["hasPRD"])
	suite.Equal(false, summary["hasUI"])

	r = suite.sessionRouter(http.MethodGet, "/api/projects/:id", suite.legacy.GetProject)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/"+id, nil))
	suite.Require().Equal(http.StatusOK, w.Code)
	project := suite.decode(w)["project"].(map[string]interface{})
	suite.Equal("# Old PRD", project["prd"])
	suite.Equal("", project["ui"])

	r = suite.sessionRouter(http.MethodDelete, "/api/projects/:id", suite.legacy.DeleteProject)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/projects/"+id, nil))
	suite.Require().Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/projects/"+id, nil))
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}

func (suite *HandlersTestSuite) TestLegacyGetProject_InvalidID() {
	r := suite.sessionRouter(http.MethodGet, "/api/projects/:id", suite.legacy.GetProject)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/not-a-uuid", nil))

	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}

func (suite *HandlersTestSuite) TestLegacyGenerate_RemembersCurrentProject() {
	r := suite.sessionRouter(http.MethodPost, "/api/claude", suite.legacy.Generate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/claude", dto.GenerateRequest{Prompt: "a shop", Type: "prd"}))
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	projectID := body["projectId"].(string)
	suite.Equal("# Shop PRD", body["content"])

	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies, "expected session cookie to be set")

	// no projectId: the session's project is reused and its PRD drives an incremental prompt
	req := jsonRequest(http.MethodPost, "/api/claude", dto.GenerateRequest{Prompt: "add a cart", Type: "prd"})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(projectID, suite.decode(w)["projectId"])

	suite.Require().Len(suite.generator.prompts, 2)
	suite.True(strings.HasSuffix(suite.generator.prompts[1], "# Shop PRD"))

	project, err := suite.store.Get(projectID)
	suite.Require().NoError(err)
	suite.Equal("# Shop PRD", project.PRD)
}

func (suite *HandlersTestSuite) TestLegacyGenerate_Validation() {
	r := suite.sessionRouter(http.MethodPost, "/api/claude", suite.legacy.Generate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/claude", dto.GenerateRequest{Type: "prd"}))

	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}

func readFrames(body string) []map[string]interface{} {
	var frames []map[string]interface{}
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		var frame map[string]interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &frame); err == nil {
			frames = append(frames, frame)
		}
	}
	return frames
}

func (suite *HandlersTestSuite) TestLegacyGenerateStream() {
	r := suite.sessionRouter(http.MethodPost, "/api/claude/stream", suite.legacy.GenerateStream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/claude/stream", dto.GenerateRequest{Prompt: "landing page", Type: "ui"}))

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	suite.Equal("no-cache", w.Header().Get("Cache-Control"))

	frames := readFrames(w.Body.String())
	suite.Require().Len(frames, 4)
	suite.Equal("init", frames[0]["type"])
	projectID := frames[0]["projectId"].(string)
	suite.Equal(map[string]interface{}{"type": "chunk", "content": "<html>"}, frames[1])
	suite.Equal(map[string]interface{}{"type": "chunk", "content": "</html>"}, frames[2])
	suite.Equal("done", frames[3]["type"])
	suite.Equal("<html></html>", frames[3]["content"])
	suite.Equal(projectID, frames[3]["projectId"])

	project, err := suite.store.Get(projectID)
	suite.Require().NoError(err)
	suite.Equal("<html></html>", project.UI)
}

func (suite *HandlersTestSuite) TestLegacyGenerateStream_ClientGoneStillPersists() {
	r := suite.sessionRouter(http.MethodPost, "/api/claude/stream", suite.legacy.GenerateStream)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := jsonRequest(http.MethodPost, "/api/claude/stream", dto.GenerateRequest{Prompt: "landing page", Type: "ui"}).WithContext(ctx)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	frames := readFrames(w.Body.String())
	suite.Require().Len(frames, 4)
	suite.Equal("init", frames[0]["type"])
	suite.Equal("done", frames[3]["type"])
	projectID := frames[3]["projectId"].(string)

	project, err := suite.store.Get(projectID)
	suite.Require().NoError(err)
	suite.Equal("<html></html>", project.UI)
}

func (suite *HandlersTestSuite) TestLegacyGenerateStream_UpstreamError() {
	suite.generator.err = &services.GenerationError{Provider: "anthropic", Err: errors.New("rate limited")}
	r := suite.sessionRouter(http.MethodPost, "/api/claude/stream", suite.legacy.GenerateStream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/claude/stream", dto.GenerateRequest{Prompt: "landing page", Type: "ui"}))

	frames := readFrames(w.Body.String())
	suite.Require().Len(frames, 2)
	suite.Equal("init", frames[0]["type"])
	suite.Equal(map[string]interface{}{"type": "error", "error": "rate limited"}, frames[1])
}

func (suite *HandlersTestSuite) TestLegacyGenerateStream_ValidationIsPlainJSON() {
	r := suite.sessionRouter(http.MethodPost, "/api/claude/stream", suite.legacy.GenerateStream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/claude/stream", dto.GenerateRequest{Prompt: "x", Type: "poem"}))

	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
}
