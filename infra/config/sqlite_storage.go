package config

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// MerchantCredentials is the stored credential set for one merchant account
// in one gateway environment.
type MerchantCredentials struct {
	Username string            `json:"username"`
	Password string            `json:"password"`
	HMACKey  string            `json:"hmacKey"`
	SkinCode string            `json:"skinCode"`
	URLs     map[string]string `json:"urls,omitempty"`
}

// SQLiteStorage handles persistent storage of merchant credentials
type SQLiteStorage struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// retryOperation executes a database operation with retry logic for SQLITE_BUSY errors
func (s *SQLiteStorage) retryOperation(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		// Check if it's a busy error
		if strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked") {
			lastErr = err
			if attempt < maxRetries {
				// Exponential backoff: 10ms, 20ms, 40ms, 80ms
				backoff := time.Duration(10*(1<<attempt)) * time.Millisecond
				log.Printf("SQLite busy, retrying in %v (attempt %d/%d)", backoff, attempt+1, maxRetries+1)
				time.Sleep(backoff)
				continue
			}
		} else {
			// Not a retry-able error
			return err
		}
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", maxRetries+1, lastErr)
}

// NewSQLiteStorage creates a new SQLite storage instance optimized for multiple processes
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// SQLite connection string with multi-process optimizations
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_timeout=20000&_txlock=immediate", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	storage := &SQLiteStorage{
		db:   db,
		path: dbPath,
	}

	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS merchant_credentials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		environment TEXT NOT NULL,
		merchant_account TEXT NOT NULL,
		credential_data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(environment, merchant_account)
	);

	CREATE INDEX IF NOT EXISTS idx_env_merchant ON merchant_credentials(environment, merchant_account);

	-- Trigger to update updated_at column
	CREATE TRIGGER IF NOT EXISTS update_merchant_credentials_updated_at
		AFTER UPDATE ON merchant_credentials
	BEGIN
		UPDATE merchant_credentials SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
	END;
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveCredentials saves a merchant credential set
func (s *SQLiteStorage) SaveCredentials(environment, merchantAccount string, creds MerchantCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	credJSON, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	return s.retryOperation(func() error {
		query := `
		INSERT INTO merchant_credentials (environment, merchant_account, credential_data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(environment, merchant_account)
		DO UPDATE SET
			credential_data = excluded.credential_data,
			updated_at = CURRENT_TIMESTAMP
		`

		_, err := s.db.Exec(query, environment, merchantAccount, string(credJSON))
		if err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		return nil
	}, 3) // Max 3 retries
}

// LoadCredentials loads the credential set for a merchant account
func (s *SQLiteStorage) LoadCredentials(environment, merchantAccount string) (MerchantCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var creds MerchantCredentials
	err := s.retryOperation(func() error {
		query := `
		SELECT credential_data
		FROM merchant_credentials
		WHERE environment = ? AND merchant_account = ?
		`

		var credJSON string
		err := s.db.QueryRow(query, environment, merchantAccount).Scan(&credJSON)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("no credentials found for environment: %s, merchant: %s", environment, merchantAccount)
			}
			return fmt.Errorf("failed to load credentials: %w", err)
		}

		if err := json.Unmarshal([]byte(credJSON), &creds); err != nil {
			return fmt.Errorf("failed to unmarshal credentials: %w", err)
		}

		return nil
	}, 3) // Max 3 retries

	return creds, err
}

// DeleteCredentials deletes the credential set for a merchant account
func (s *SQLiteStorage) DeleteCredentials(environment, merchantAccount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.retryOperation(func() error {
		query := `
		DELETE FROM merchant_credentials
		WHERE environment = ? AND merchant_account = ?
		`

		result, err := s.db.Exec(query, environment, merchantAccount)
		if err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("no credentials found for environment: %s, merchant: %s", environment, merchantAccount)
		}
		return nil
	}, 3) // Max 3 retries
}

// MerchantsByEnvironment returns all merchant accounts stored for an environment
func (s *SQLiteStorage) MerchantsByEnvironment(environment string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
	SELECT merchant_account
	FROM merchant_credentials
	WHERE environment = ?
	ORDER BY merchant_account
	`

	rows, err := s.db.Query(query, environment)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants by environment: %w", err)
	}
	defer rows.Close()

	var merchants []string
	for rows.Next() {
		var merchantAccount string
		if err := rows.Scan(&merchantAccount); err != nil {
			return nil, fmt.Errorf("failed to scan merchant account: %w", err)
		}
		merchants = append(merchants, merchantAccount)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating merchant rows: %w", err)
	}

	return merchants, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStats returns database statistics
func (s *SQLiteStorage) GetStats() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[string]any)

	var totalCredentials int
	err := s.db.QueryRow("SELECT COUNT(*) FROM merchant_credentials").Scan(&totalCredentials)
	if err != nil {
		return nil, fmt.Errorf("failed to count credentials: %w", err)
	}
	stats["total_credentials"] = totalCredentials

	var uniqueEnvironments int
	err = s.db.QueryRow("SELECT COUNT(DISTINCT environment) FROM merchant_credentials").Scan(&uniqueEnvironments)
	if err != nil {
		return nil, fmt.Errorf("failed to count environments: %w", err)
	}
	stats["unique_environments"] = uniqueEnvironments

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats["db_size_bytes"] = fileInfo.Size()
	}

	stats["db_path"] = s.path

	return stats, nil
}
