package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/database"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// BucketHandlerTestSuite defines the test suite for BucketHandler
type BucketHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BucketHandler
}

// SetupTest runs before each test
func (suite *BucketHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Artwork{},
		&models.ArtworkTask{},
		&models.StatusHistory{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	taskRepo := repository.NewTaskRepository(suite.db)
	movementService := services.NewMovementService(taskRepo, nopDispatcher{}, logger)
	bucketService := services.NewBucketService(taskRepo, movementService, nopDispatcher{}, logger)
	suite.handler = NewBucketHandler(bucketService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BucketHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BucketHandlerTestSuite) createCompletedSalesTask(title string) (*models.User, *models.ArtworkTask) {
	user := &models.User{Email: "sales@example.com", PasswordHash: "hashedpassword", Role: models.RoleSales}
	suite.db.Create(user)
	customer := &models.Customer{Title: "Acme Prints"}
	suite.db.Create(customer)
	artwork := &models.Artwork{Title: "Spring Catalog", CustomerID: customer.ID}
	suite.db.Create(artwork)
	task := &models.ArtworkTask{
		Title:        title,
		WorkflowType: workflow.TypeSales,
		Status:       workflow.StatusCompleted,
		Priority:     models.PriorityMedium,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
	}
	suite.db.Create(task)
	return user, task
}

func (suite *BucketHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestMoveToBucket_Success tests the handoff endpoint
func (suite *BucketHandlerTestSuite) TestMoveToBucket_Success() {
	user, _ := suite.createCompletedSalesTask("Spring Catalog Cover")

	c, w := suite.createAuthContext("POST", "/api/bucket/move-to", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.MoveToBucket(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bucket", response["status"])
	assert.Equal(suite.T(), "Spring Catalog Cover - Procurement", response["title"])
}

// TestMoveToBucket_NotEligible tests that a non-completed task maps to 422
func (suite *BucketHandlerTestSuite) TestMoveToBucket_NotEligible() {
	user, task := suite.createCompletedSalesTask("Spring Catalog Cover")
	suite.db.Model(task).Update("status", workflow.StatusDraft)

	c, w := suite.createAuthContext("POST", "/api/bucket/move-to", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.MoveToBucket(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "INVALID_BUCKET_TRANSITION", response["code"])
}

// TestMoveFromBucket_DefaultStatus tests release through the endpoint
func (suite *BucketHandlerTestSuite) TestMoveFromBucket_DefaultStatus() {
	user, _ := suite.createCompletedSalesTask("Spring Catalog Cover")

	// Hand the task off first
	moveCtx, _ := suite.createAuthContext("POST", "/api/bucket/move-to", nil, user.ID)
	moveCtx.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.MoveToBucket(moveCtx)

	c, w := suite.createAuthContext("POST", "/api/bucket/move-from", []byte("{}"), user.ID)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	suite.handler.MoveFromBucket(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Procurement Review", response["status"])
}

// TestGetStats_EmptyBucket tests the stats endpoint on an empty bucket
func (suite *BucketHandlerTestSuite) TestGetStats_EmptyBucket() {
	user, _ := suite.createCompletedSalesTask("Spring Catalog Cover")

	c, w := suite.createAuthContext("GET", "/api/bucket/stats", nil, user.ID)

	suite.handler.GetStats(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(0), response["total_tasks"])
}

// TestListCompletedSales_ReturnsAnnotatedTasks tests the completed-sales
// listing endpoint
func (suite *BucketHandlerTestSuite) TestListCompletedSales_ReturnsAnnotatedTasks() {
	user, _ := suite.createCompletedSalesTask("Spring Catalog Cover")

	c, w := suite.createAuthContext("GET", "/api/bucket/completed-sales", nil, user.ID)

	suite.handler.ListCompletedSales(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(1), response["total_count"])
	assert.Equal(suite.T(), false, response["has_more"])
}

// TestSuite runs the test suite
func TestBucketHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BucketHandlerTestSuite))
}
