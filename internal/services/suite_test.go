package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

const (
	eventWaitTimeout  = 2 * time.Second
	eventPollInterval = 10 * time.Millisecond
)

// eventRecorder is a Dispatcher that records every dispatched event so tests
// can assert on the notification contract without a running bus.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.TaskEvent
}

func (r *eventRecorder) Dispatch(_ context.Context, event events.TaskEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) recorded() []events.TaskEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.TaskEvent(nil), r.events...)
}

func (r *eventRecorder) byType(eventType events.EventType) []events.TaskEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []events.TaskEvent
	for _, event := range r.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// serviceSuite is the shared fixture: in-memory SQLite, real repositories and
// a recording dispatcher.
type serviceSuite struct {
	suite.Suite
	db         *gorm.DB
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	recorder   *eventRecorder
	testLogger *slog.Logger
}

// SetupTest runs before each test
func (suite *serviceSuite) SetupTest() {
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

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	suite.userRepo = repository.NewUserRepository(suite.db)
	suite.recorder = &eventRecorder{}
	suite.testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TearDownTest runs after each test
func (suite *serviceSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *serviceSuite) createTestUser(email string, role models.Role) *models.User {
	user := &models.User{
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *serviceSuite) createTestCustomer(title string) *models.Customer {
	customer := &models.Customer{Title: title}
	suite.db.Create(customer)
	return customer
}

func (suite *serviceSuite) createTestArtwork(title string, customerID uint64) *models.Artwork {
	artwork := &models.Artwork{
		Title:      title,
		CustomerID: customerID,
	}
	suite.db.Create(artwork)
	return artwork
}

func (suite *serviceSuite) createTestTask(title string, workflowType workflow.Type, status workflow.Status, creatorID, customerID, artworkID uint64) *models.ArtworkTask {
	task := &models.ArtworkTask{
		Title:               title,
		Description:         "Test Description",
		WorkflowType:        workflowType,
		Status:              status,
		Priority:            models.PriorityMedium,
		ArtworkID:           artworkID,
		CustomerID:          customerID,
		CreatorID:           creatorID,
		LastStatusChange:    time.Now(),
		LastStatusChangedBy: creatorID,
	}
	suite.db.Create(task)
	return task
}

func (suite *serviceSuite) historyCount(taskID uint64) int64 {
	var count int64
	suite.db.Model(&models.StatusHistory{}).Where("task_id = ?", taskID).Count(&count)
	return count
}
