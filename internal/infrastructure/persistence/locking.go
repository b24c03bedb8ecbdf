package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate appends a row lock on dialects that support one. SQLite
// serializes writers on its own and rejects FOR UPDATE outright, so the
// clause is skipped there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
