// sqlite storage for the component model registry

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yumyai/admixmap/pkg/model"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS admixture_models (
		id              TEXT PRIMARY KEY,
		display_name    TEXT NOT NULL,
		component_count INTEGER NOT NULL,
		geography_file  TEXT NOT NULL,
		strict_names    INTEGER NOT NULL DEFAULT 0,
		position        INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS region_mappings (
		model_id  TEXT NOT NULL REFERENCES admixture_models(id) ON DELETE CASCADE,
		component TEXT NOT NULL,
		region    TEXT NOT NULL,
		PRIMARY KEY (model_id, component)
	);
`

// Open opens the sqlite registry database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}
	// one connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create registry schema: %w", err)
	}
	return nil
}

// SeedModels writes the models, replacing rows with the same id.
// Registration order is kept in the position column.
func SeedModels(ctx context.Context, db *sql.DB, models []model.ComponentModel) error {
	if err := EnsureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for i, m := range models {
		if _, err := tx.ExecContext(ctx, `DELETE FROM region_mappings WHERE model_id = ?`, m.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear mappings of %s: %w", m.ID, err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO admixture_models (id, display_name, component_count, geography_file, strict_names, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.DisplayName, m.ExpectedComponentCount, m.GeographyFile, boolToInt(m.StrictNames), i)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert model %s: %w", m.ID, err)
		}

		for component, region := range m.RegionMapping {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO region_mappings (model_id, component, region) VALUES (?, ?, ?)`,
				m.ID, component, region)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to insert mapping %s/%s: %w", m.ID, component, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadModels reads every model in registration order.
func LoadModels(ctx context.Context, db *sql.DB) ([]model.ComponentModel, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, display_name, component_count, geography_file, strict_names
		FROM admixture_models
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	var models []model.ComponentModel
	index := make(map[string]int)

	for rows.Next() {
		var m model.ComponentModel
		if err := rows.Scan(&m.ID, &m.DisplayName, &m.ExpectedComponentCount, &m.GeographyFile, &m.StrictNames); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		m.RegionMapping = make(map[string]string)
		index[m.ID] = len(models)
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mrows, err := db.QueryContext(ctx, `SELECT model_id, component, region FROM region_mappings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query region mappings: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var modelID, component, region string
		if err := mrows.Scan(&modelID, &component, &region); err != nil {
			return nil, fmt.Errorf("failed to scan region mapping: %w", err)
		}
		if i, ok := index[modelID]; ok {
			models[i].RegionMapping[component] = region
		}
	}

	return models, mrows.Err()
}

// LoadRegistry builds a registry from the database.
func LoadRegistry(ctx context.Context, db *sql.DB) (*model.Registry, error) {
	models, err := LoadModels(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("registry database holds no models")
	}
	return model.NewRegistry(models...)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
