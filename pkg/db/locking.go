package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate adds a row lock to q on Postgres. sqlite serialises writers on its
// own and has no FOR UPDATE syntax.
func ForUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector == nil || q.Dialector.Name() != "postgres" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}
