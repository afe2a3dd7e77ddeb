package repos

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumen/internal/constants"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS setting (
    key VARCHAR(64) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP
  );
`

type SettingsRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewSettingsRepo(logger *log.Logger, db *sql.DB) (*SettingsRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising setting schema: %w", err)
	}

	return &SettingsRepo{logger: logger, db: db}, nil
}

// Get returns the stored value, ok is false when the key was never set
func (r *SettingsRepo) Get(key string) (value string, ok bool, err error) {
	row := r.db.QueryRow("SELECT value FROM setting WHERE key = $1", key)

	err = row.Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("Error reading setting (%s): %w", key, err)
	}
	return value, true, nil
}

func (r *SettingsRepo) Set(key string, value string) error {
	_, err := r.db.Exec(`
    INSERT INTO setting (key, value, updated_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())
	if err != nil {
		return fmt.Errorf("Error saving setting (%s): %w", key, err)
	}
	r.logger.Debug("Saved setting", "key", key)
	return nil
}

// ServerSetting is the persisted base address of the lighting service
type ServerSetting struct {
	logger *log.Logger
	repo   *SettingsRepo

	mu     sync.RWMutex
	server string
}

// NewServerSetting loads the stored address, falling back when none was ever saved
func NewServerSetting(logger *log.Logger, repo *SettingsRepo, fallback string) (*ServerSetting, error) {
	server, ok, err := repo.Get(constants.SettingServer)
	if err != nil {
		return nil, err
	}
	if !ok {
		server = fallback
	}
	logger.Info("Lighting service address", "server", server, "stored", ok)

	return &ServerSetting{logger: logger, repo: repo, server: server}, nil
}

// Server returns the current address, empty when no server is configured
func (s *ServerSetting) Server() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server
}

func (s *ServerSetting) SetServer(server string) error {
	server = strings.TrimSpace(server)

	if err := s.repo.Set(constants.SettingServer, server); err != nil {
		return err
	}

	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	s.logger.Info("Lighting service address changed", "server", server)
	return nil
}
