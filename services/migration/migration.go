package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
)

const (
	defaultDir   = "migrations"
	versionTable = "gopg_migrations"
)

// PGMigration applies the SQL schema files found in dir.
type PGMigration struct {
	db  *cs.PG
	col *migrations.Collection
	dir string
}

func NewPGMigration(db *cs.PG, col *migrations.Collection) *PGMigration {
	return &PGMigration{
		db:  db,
		col: col.SetTableName(versionTable),
		dir: defaultDir,
	}
}

func (s *PGMigration) WithDir(dir string) *PGMigration {
	s.dir = dir
	return s
}

// Run executes the migrations command a ("up" when empty).
func (s *PGMigration) Run(a ...string) error {
	db := s.db.Get()
	if db == nil {
		log.Info("DB not initialized, skipping migration")
		return nil
	}
	if len(a) == 0 {
		a = []string{"up"}
	}
	if err := s.col.DiscoverSQLMigrations(s.dir); err != nil {
		return errors.Wrapf(err, "failed to discover migrations in %v", s.dir)
	}
	if _, _, err := s.col.Run(db, "init"); err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrapf(err, "failed to migrate schema from %v to %v", oldVersion, newVersion)
	}
	l := log.WithFields(log.Fields{
		"command": a[0],
		"from":    oldVersion,
		"to":      newVersion,
	})
	if newVersion != oldVersion {
		l.Info("schema migrated")
	} else {
		l.Info("schema is up to date")
	}
	return nil
}
