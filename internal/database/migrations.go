package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irondev/iron-dev-agent/internal/models"
)

type index struct {
	model   any
	name    string
	columns string
}

// secondaryIndexes are the lookups the list and authorization paths depend on
// that struct tags do not declare.
var secondaryIndexes = []index{
	{&models.ProjectCollaborator{}, "idx_project_collaborators_user_id", "user_id"},
	{&models.Project{}, "idx_projects_updated_at", "updated_at"},
	{&models.Project{}, "idx_projects_status", "status"},
}

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to resolve table for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index",
			zap.String("index", idx.name),
			zap.String("table", stmt.Schema.Table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}

// MigrateDatabase runs the migrations AutoMigrate does not cover
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
