package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Migrate creates the tables and indexes used by the API if they do not exist
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Threat)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	indexes := []*bun.CreateIndexQuery{
		db.NewCreateIndex().Model((*Threat)(nil)).Index("threats_category_idx").Column("threat_category").IfNotExists(),
		db.NewCreateIndex().Model((*Threat)(nil)).Index("threats_severity_idx").Column("severity_score").IfNotExists(),
	}
	for _, idx := range indexes {
		if _, err := idx.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
