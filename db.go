package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	// profile queries
	getAllProfilesSQL        = `SELECT id, name, birthday, life_expectancy, active, created_at FROM profiles ORDER BY name`
	getProfileByNameSQL      = `SELECT id, name, birthday, life_expectancy, active, created_at FROM profiles WHERE name = ?`
	getActiveProfileSQL      = `SELECT id, name, birthday, life_expectancy, active, created_at FROM profiles WHERE active = 1`
	checkProfileExistsSQL    = `SELECT EXISTS(SELECT 1 FROM profiles WHERE name = ?)`
	upsertProfileSQL         = `INSERT INTO profiles (name, birthday, life_expectancy) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET birthday = excluded.birthday, life_expectancy = excluded.life_expectancy`
	activateProfileByNameSQL = `UPDATE profiles SET active = 1 WHERE name = ?`
	deactivateAllProfilesSQL = `UPDATE profiles SET active = 0`
	deleteProfileByNameSQL   = `DELETE FROM profiles WHERE name = ?`
)

type Repo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepo(dbPath string, logger *slog.Logger) (*Repo, error) {
	// ensure directory exists
	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// verify connection with database
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repo{db: db, logger: logger}

	// run migrations
	if err := repo.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("profile store ready", "path", dbPath)
	return repo, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

// brings the schema up to the latest embedded migration
func (r *Repo) runMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	// m is not closed: that would close r.db along with the driver
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, _, _ := m.Version()
	r.logger.Debug("migrations applied", "version", version)
	return nil
}

// +-----------------------+
// |                       |
// |    Profile Queries    |
// |                       |
// +-----------------------+

// checks if a profile exists by name
func (r *Repo) CheckProfileExists(name string) bool {
	var exists bool
	err := r.db.QueryRow(checkProfileExistsSQL, name).Scan(&exists)
	if err != nil {
		r.logger.Warn("error checking if profile exists", "name", name, "err", err)
		return false
	}
	return exists
}

// creates a profile or updates the one with the same name, making it the
// active profile in the same transaction when activate is set
func (r *Repo) SaveProfile(p Profile, activate bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertProfileSQL, p.Name, p.Birthday, p.LifeExpectancy); err != nil {
		return fmt.Errorf("failed to save profile %q: %w", p.Name, err)
	}

	if activate {
		if err := activateProfile(tx, p.Name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// get all profiles, ordered by name
func (r *Repo) GetAllProfiles() ([]Profile, error) {
	rows, err := r.db.Query(getAllProfilesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// get all profile names, used for completion and the picker
func (r *Repo) GetProfileNames() ([]string, error) {
	profiles, err := r.GetAllProfiles()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names, nil
}

func (r *Repo) GetProfile(name string) (*Profile, error) {
	p, err := scanProfile(r.db.QueryRow(getProfileByNameSQL, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}
		return nil, err
	}
	return &p, nil
}

// set active profile by name
func (r *Repo) SetActiveProfile(name string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := activateProfile(tx, name); err != nil {
		return err
	}

	return tx.Commit()
}

func activateProfile(tx *sql.Tx, name string) error {
	// deactivate all profiles
	_, err := tx.Exec(deactivateAllProfilesSQL)
	if err != nil {
		return err
	}

	// activate specified profile
	res, err := tx.Exec(activateProfileByNameSQL, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return nil
}

// get active profile, nil when none is active
func (r *Repo) GetActiveProfile() (*Profile, error) {
	p, err := scanProfile(r.db.QueryRow(getActiveProfileSQL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) DeleteProfile(name string) error {
	res, err := r.db.Exec(deleteProfileByNameSQL, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.Birthday, &p.LifeExpectancy, &p.Active, &p.CreatedAt)
	return p, err
}
