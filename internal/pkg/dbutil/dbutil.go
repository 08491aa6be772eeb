// internal/pkg/dbutil/dbutil.go
package dbutil

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate applies a SELECT ... FOR UPDATE row lock where the dialect
// supports it. SQLite serializes writers at the database level, so the
// clause is skipped there rather than producing a syntax error.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
