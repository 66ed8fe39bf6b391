package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the migration source shipped with the binary.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return nil
	}
	return sub
}

// Migrate applies every *.sql file from fsys that has not been recorded in
// the _migrations bookkeeping table, in lexicographic order. Each file runs
// inside one transaction together with its bookkeeping insert, so a failed
// migration leaves no record and aborts the bootstrap. Running Migrate on
// every start is safe: recorded names are skipped. A nil source means there
// is nothing to apply.
func Migrate(db *gorm.DB, fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (
		name TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL
	)`).Error
	if err != nil {
		return fmt.Errorf("create _migrations table: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	var recorded []string
	if err := db.Table("_migrations").Pluck("name", &recorded).Error; err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(recorded))
	for _, name := range recorded {
		applied[name] = true
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		stmts, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(stmts)).Error; err != nil {
				return err
			}
			return tx.Exec("INSERT INTO _migrations (name, applied_at) VALUES (?, ?)",
				name, time.Now().UTC()).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		log.Printf("applied migration: %s", name)
	}
	return nil
}
