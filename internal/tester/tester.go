package tester

import (
	"os"
	"path/filepath"

	"github.com/emrgen/linkdealer/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db     *gorm.DB
	dbPath string
)

// Setup opens a fresh sqlite database for tests and migrates the schema.
// Each call starts from an empty database; the file lives in a temp dir so
// test packages do not trample each other.
func Setup() {
	RemoveDBFile()

	dir, err := os.MkdirTemp("", "linkdealer-test-")
	if err != nil {
		panic(err)
	}
	dbPath = dir

	db, err = gorm.Open(sqlite.Open(filepath.Join(dir, "linkdealer.db")), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if dbPath == "" {
		return
	}

	err := os.RemoveAll(dbPath)
	if err != nil {
		panic(err)
	}

	dbPath = ""
}
