package store

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens the identity database and migrates the gateway's tables.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}, &Role{}, &Challenge{}, &Organization{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedRoles makes sure the role catalog carries the built-in role names.
func SeedRoles(db *gorm.DB, names ...string) error {
	if len(names) == 0 {
		names = []string{"USER", "ADMIN", "RECRUITER"}
	}
	for _, name := range names {
		var role Role
		if err := db.Where("name = ?", name).FirstOrCreate(&role, Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
