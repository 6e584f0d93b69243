package handlers

import (
	"net/http"

	"github.com/irondev/iron-dev-agent/internal/constants"
	"github.com/irondev/iron-dev-agent/internal/dto"
)

func (suite *HandlersTestSuite) TestRegister_ReturnsUserWithToken() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Username:  "newuser",
		Email:     "New@Example.com",
		Password:  "supersecret",
		FirstName: "Ada",
	}, 0)

	suite.auth.Register(c)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["success"])

	user := body["user"].(map[string]interface{})
	suite.Equal("newuser", user["username"])
	suite.Equal("new@example.com", user["email"])
	suite.Equal("Ada", user["firstName"])
	suite.NotContains(user, "passwordHash")

	token, ok := user["token"].(string)
	suite.Require().True(ok)
	id, err := suite.tokenService.Parse(token)
	suite.Require().NoError(err)
	suite.EqualValues(user["id"], id)
}

func (suite *HandlersTestSuite) TestRegister_Conflicts() {
	suite.createTestUser("taken")

	c, w := suite.createAuthContext(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Username: "taken",
		Email:    "other@example.com",
		Password: "supersecret",
	}, 0)
	suite.auth.Register(c)
	suite.assertError(w, http.StatusConflict, "ALREADY_EXISTS")

	c, w = suite.createAuthContext(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Username: "fresh",
		Email:    "taken@example.com",
		Password: "supersecret",
	}, 0)
	suite.auth.Register(c)
	suite.assertError(w, http.StatusConflict, "ALREADY_EXISTS")
}

func (suite *HandlersTestSuite) TestRegister_Validation() {
	tests := []struct {
		name string
		body interface{}
	}{
		{"missing fields", map[string]string{"username": "abc"}},
		{"short password", dto.RegisterRequest{Username: "shorty", Email: "s@example.com", Password: "123"}},
		{"bad email", dto.RegisterRequest{Username: "bademail", Email: "not-an-email", Password: "supersecret"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			c, w := suite.createAuthContext(http.MethodPost, "/api/auth/register", tt.body, 0)
			suite.auth.Register(c)
			suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
		})
	}
}

func (suite *HandlersTestSuite) TestLogin() {
	suite.createTestUser("existing")

	for _, req := range []dto.LoginRequest{
		{Username: "existing", Password: "password123"},
		{Email: "existing@example.com", Password: "password123"},
	} {
		c, w := suite.createAuthContext(http.MethodPost, "/api/auth/login", req, 0)
		suite.auth.Login(c)

		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		user := suite.decode(w)["user"].(map[string]interface{})
		suite.Equal("existing", user["username"])
		suite.NotEmpty(user["token"])
	}
}

func (suite *HandlersTestSuite) TestLogin_WrongPassword() {
	suite.createTestUser("existing")

	c, w := suite.createAuthContext(http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Username: "existing",
		Password: "wrong-password",
	}, 0)
	suite.auth.Login(c)

	suite.assertError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func (suite *HandlersTestSuite) TestGetProfile() {
	user := suite.createTestUser("current-user")

	c, w := suite.createAuthContext(http.MethodGet, "/api/auth/profile", nil, user.ID)
	c.Set(constants.ContextKeyUser, user)
	suite.auth.GetProfile(c)

	suite.Require().Equal(http.StatusOK, w.Code)
	profile := suite.decode(w)["user"].(map[string]interface{})
	suite.Equal("current-user", profile["username"])
	suite.NotContains(profile, "token")
}

func (suite *HandlersTestSuite) TestUpdateProfile() {
	user := suite.createTestUser("profile")
	first := "Grace"

	c, w := suite.createAuthContext(http.MethodPut, "/api/auth/profile", dto.UpdateProfileRequest{
		FirstName:   &first,
		Preferences: map[string]any{"theme": "dark"},
	}, user.ID)
	suite.auth.UpdateProfile(c)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	profile := suite.decode(w)["user"].(map[string]interface{})
	suite.Equal("Grace", profile["firstName"])
	suite.Equal(map[string]interface{}{"theme": "dark"}, profile["preferences"])
}

func (suite *HandlersTestSuite) TestEmailRejectedAtBinding() {
	user := suite.createTestUser("binding")

	c, w := suite.createAuthContext(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Username: "bademail",
		Email:    "not-an-email",
		Password: "supersecret",
	}, 0)
	suite.auth.Register(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
	suite.Equal("Invalid request body", suite.decode(w)["error"])

	email := "still-not-an-email"
	c, w = suite.createAuthContext(http.MethodPut, "/api/auth/profile", dto.UpdateProfileRequest{
		Email: &email,
	}, user.ID)
	suite.auth.UpdateProfile(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")
	suite.Equal("Invalid request body", suite.decode(w)["error"])
}

func (suite *HandlersTestSuite) TestChangePassword() {
	user := suite.createTestUser("rotate")

	c, w := suite.createAuthContext(http.MethodPut, "/api/auth/password", dto.ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "brand-new-pass",
	}, user.ID)
	suite.auth.ChangePassword(c)
	suite.assertError(w, http.StatusBadRequest, "INVALID_INPUT")

	c, w = suite.createAuthContext(http.MethodPut, "/api/auth/password", dto.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "brand-new-pass",
	}, user.ID)
	suite.auth.ChangePassword(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	c, w = suite.createAuthContext(http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Username: "rotate",
		Password: "brand-new-pass",
	}, 0)
	suite.auth.Login(c)
	suite.Equal(http.StatusOK, w.Code)
}
