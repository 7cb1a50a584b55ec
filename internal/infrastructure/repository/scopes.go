package repository

import "gorm.io/gorm"

// SearchScope returns a GORM scope matching search against any of the given
// columns. Uses LOWER/LIKE so the same scope works on postgres and the
// sqlite databases the tests run on.
func SearchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + search + "%"
		cond := db.Session(&gorm.Session{NewDB: true})
		for _, col := range columns {
			cond = cond.Or("LOWER("+col+") LIKE LOWER(?)", pattern)
		}
		return db.Where(cond)
	}
}
