package scope

import (
	"strings"

	"gorm.io/gorm"
)

// Equal filters on column only when value is non-empty.
func Equal(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// Search matches term case-insensitively against any of the columns.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
