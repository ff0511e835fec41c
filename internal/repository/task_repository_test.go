package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gameplanhq/artwork-workflow-api/internal/utils"
)

// newMockDB opens a GORM connection backed by sqlmock so SQL shapes can be
// asserted without a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestCountBySalesReference_FiltersOnProcurementWorkflow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `artwork_tasks` WHERE sales_task_reference = \\? AND workflow_type = \\?").
		WithArgs(7, "Procurement Cycle").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountBySalesReference(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupBucketByCustomer_JoinsCustomers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT artwork_tasks.customer_id AS customer_id, customers.title AS customer_title, COUNT\\(\\*\\) AS count FROM `artwork_tasks` LEFT JOIN customers ON customers.id = artwork_tasks.customer_id WHERE artwork_tasks.status = \\?").
		WithArgs("Bucket").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "customer_title", "count"}).
			AddRow(1, "Acme Prints", 4).
			AddRow(2, "Northwind", 1))

	counts, err := repo.GroupBucketByCustomer()
	assert.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Acme Prints", counts[0].CustomerTitle)
	assert.Equal(t, int64(4), counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AppliesPaginationScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `artwork_tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery("SELECT \\* FROM `artwork_tasks` ORDER BY artwork_tasks\\.updated_at ASC LIMIT \\? OFFSET \\?").
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tasks, total, err := repo.List(TaskFilter{Page: utils.PaginationParams{Offset: 20, Limit: 10}})
	assert.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, int64(45), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NoPageFetchesAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `artwork_tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `artwork_tasks` ORDER BY artwork_tasks\\.updated_at ASC$").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.List(TaskFilter{})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnread_OnlyCountsUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `notifications` WHERE to_user_id = \\? AND `read` = \\?").
		WithArgs(9, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountUnread(9)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
