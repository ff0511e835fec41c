package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/workflow"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	serviceSuite
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.serviceSuite.SetupTest()
	suite.service = NewTaskService(suite.taskRepo, suite.userRepo, suite.recorder, suite.testLogger)
}

func (suite *TaskServiceTestSuite) fixtures() (*models.User, *models.Customer, *models.Artwork) {
	user := suite.createTestUser("sales@example.com", models.RoleSales)
	customer := suite.createTestCustomer("Acme Prints")
	artwork := suite.createTestArtwork("Spring Catalog", customer.ID)
	return user, customer, artwork
}

// TestCreateTask_SalesStartsAtDraft tests that a sales task starts at Draft
func (suite *TaskServiceTestSuite) TestCreateTask_SalesStartsAtDraft() {
	user, customer, artwork := suite.fixtures()

	task, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Spring Catalog Cover",
		WorkflowType: workflow.TypeSales,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), workflow.StatusDraft, task.Status)
	assert.Equal(suite.T(), models.PriorityMedium, task.Priority)

	// Creation movement on record
	assert.Equal(suite.T(), int64(1), suite.historyCount(task.ID))

	created := suite.recorder.byType(events.EventCreated)
	suite.Require().Len(created, 1)
	assert.Equal(suite.T(), task.ID, created[0].TaskID)
}

// TestCreateTask_ProcurementStartsAtDraft tests the procurement initial status
func (suite *TaskServiceTestSuite) TestCreateTask_ProcurementStartsAtDraft() {
	user, customer, artwork := suite.fixtures()

	task, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Supplier Review",
		WorkflowType: workflow.TypeProcurement,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), workflow.StatusProcurementDraft, task.Status)
}

// TestCreateTask_BlankTitle tests title validation
func (suite *TaskServiceTestSuite) TestCreateTask_BlankTitle() {
	user, customer, artwork := suite.fixtures()

	_, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "   ",
		WorkflowType: workflow.TypeSales,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrTitleRequired)
}

// TestCreateTask_UnknownWorkflowType tests the workflow type check
func (suite *TaskServiceTestSuite) TestCreateTask_UnknownWorkflowType() {
	user, customer, artwork := suite.fixtures()

	_, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Task",
		WorkflowType: "Mystery Cycle",
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
	})

	assert.ErrorIs(suite.T(), err, workflow.ErrUnknownWorkflowType)
}

// TestCreateTask_AssigneeNotified tests the assignment event
func (suite *TaskServiceTestSuite) TestCreateTask_AssigneeNotified() {
	user, customer, artwork := suite.fixtures()
	assignee := suite.createTestUser("designer@example.com", models.RoleQuality)

	task, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Assigned Task",
		WorkflowType: workflow.TypeSales,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
		AssigneeID:   &assignee.ID,
	})

	assert.NoError(suite.T(), err)
	suite.Require().NotNil(task.AssigneeID)
	assert.Equal(suite.T(), assignee.ID, *task.AssigneeID)

	assigned := suite.recorder.byType(events.EventAssignment)
	suite.Require().Len(assigned, 1)
	assert.Equal(suite.T(), assignee.ID, assigned[0].AssigneeID)
}

// TestCreateTask_MissingAssignee tests that an unknown assignee is rejected
func (suite *TaskServiceTestSuite) TestCreateTask_MissingAssignee() {
	user, customer, artwork := suite.fixtures()
	missing := uint64(9999)

	_, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		Title:        "Task",
		WorkflowType: workflow.TypeSales,
		ArtworkID:    artwork.ID,
		CustomerID:   customer.ID,
		CreatorID:    user.ID,
		AssigneeID:   &missing,
	})

	assert.ErrorIs(suite.T(), err, ErrAssigneeNotFound)
}

// TestListTasks_FilterByWorkflowAndStatus tests combined filtering
func (suite *TaskServiceTestSuite) TestListTasks_FilterByWorkflowAndStatus() {
	user, customer, artwork := suite.fixtures()
	suite.createTestTask("Sales Draft", workflow.TypeSales, workflow.StatusDraft, user.ID, customer.ID, artwork.ID)
	suite.createTestTask("Sales Review", workflow.TypeSales, workflow.StatusQualityReview, user.ID, customer.ID, artwork.ID)
	suite.createTestTask("Procurement", workflow.TypeProcurement, workflow.StatusProcurementDraft, user.ID, customer.ID, artwork.ID)

	salesType := workflow.TypeSales
	draft := workflow.StatusDraft
	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		WorkflowType: &salesType,
		Status:       &draft,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Sales Draft", tasks[0].Title)
}

// TestListTasks_StatusOutsidePipeline tests the membership check on filters
func (suite *TaskServiceTestSuite) TestListTasks_StatusOutsidePipeline() {
	salesType := workflow.TypeSales
	procurementStatus := workflow.StatusProcurementReview

	_, _, err := suite.service.ListTasks(ListTasksInput{
		WorkflowType: &salesType,
		Status:       &procurementStatus,
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidStatusFilter)
}

// TestGetTask_NotFound tests fetching a missing task
func (suite *TaskServiceTestSuite) TestGetTask_NotFound() {
	_, err := suite.service.GetTask(9999)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
