package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/gameplanhq/artwork-workflow-api/internal/models"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	serviceSuite
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.serviceSuite.SetupTest()
	suite.service = NewAuthService(suite.userRepo)
}

// TestSignup_Success tests successful signup
func (suite *AuthServiceTestSuite) TestSignup_Success() {
	user, err := suite.service.Signup(SignupInput{
		Email:    "Designer@Example.com",
		Password: "securepassword",
		FullName: "Dana Designer",
		Role:     models.RoleQuality,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "designer@example.com", user.Email)
	assert.Equal(suite.T(), models.RoleQuality, user.Role)
	assert.NotEqual(suite.T(), "securepassword", user.PasswordHash)
}

// TestSignup_DefaultRole tests that the role defaults to sales
func (suite *AuthServiceTestSuite) TestSignup_DefaultRole() {
	user, err := suite.service.Signup(SignupInput{
		Email:    "sales@example.com",
		Password: "securepassword",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleSales, user.Role)
}

// TestSignup_EmailTaken tests duplicate registration
func (suite *AuthServiceTestSuite) TestSignup_EmailTaken() {
	suite.createTestUser("taken@example.com", models.RoleSales)

	_, err := suite.service.Signup(SignupInput{
		Email:    "taken@example.com",
		Password: "securepassword",
	})

	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

// TestSignup_PasswordTooShort tests the password length check
func (suite *AuthServiceTestSuite) TestSignup_PasswordTooShort() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "short@example.com",
		Password: "short",
	})

	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

// TestSignup_UnknownRole tests the role check
func (suite *AuthServiceTestSuite) TestSignup_UnknownRole() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "role@example.com",
		Password: "securepassword",
		Role:     "warehouse",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidRole)
}

// TestLogin_Success tests login with correct credentials
func (suite *AuthServiceTestSuite) TestLogin_Success() {
	created, err := suite.service.Signup(SignupInput{
		Email:    "login@example.com",
		Password: "securepassword",
	})
	suite.Require().NoError(err)

	user, err := suite.service.Login(LoginInput{
		Email:    "login@example.com",
		Password: "securepassword",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.ID, user.ID)
}

// TestLogin_WrongPassword tests login with a wrong password
func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.service.Signup(SignupInput{
		Email:    "login@example.com",
		Password: "securepassword",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Login(LoginInput{
		Email:    "login@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestLogin_UnknownEmail tests login with an unknown email
func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := suite.service.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "securepassword",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestGetUser_NotFound tests fetching a missing user
func (suite *AuthServiceTestSuite) TestGetUser_NotFound() {
	_, err := suite.service.GetUser(9999)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

// TestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
