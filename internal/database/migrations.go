package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the compound indexes the kanban and bucket queries rely on.
// AutoMigrate only creates single-column indexes from struct tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"artwork_tasks", "idx_artwork_tasks_customer_status", "customer_id, status"},
		{"artwork_tasks", "idx_artwork_tasks_status_updated", "status, updated_at"},
		{"artwork_tasks", "idx_artwork_tasks_workflow_status", "workflow_type, status"},
		{"status_histories", "idx_status_histories_task_changed", "task_id, changed_at"},
		{"notifications", "idx_notifications_user_read", "to_user_id, `read`"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
