package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "credentials.db")
	storage, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestNewSQLiteStorage(t *testing.T) {
	storage := newTestStorage(t)

	assert.NotNil(t, storage.db)
	assert.NotEmpty(t, storage.path)
}

func TestSQLiteStorage_SaveCredentials(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name            string
		environment     string
		merchantAccount string
		creds           MerchantCredentials
	}{
		{
			name:            "valid_credentials",
			environment:     "test",
			merchantAccount: "TestMerchant",
			creds: MerchantCredentials{
				Username: "ws_user",
				Password: "ws_pass",
				HMACKey:  "DEADBEEF",
				SkinCode: "sk1nC0de",
			},
		},
		{
			name:            "update_existing_credentials",
			environment:     "test",
			merchantAccount: "TestMerchant",
			creds: MerchantCredentials{
				Username: "ws_user2",
				Password: "ws_pass2",
				HMACKey:  "CAFEBABE",
			},
		},
		{
			name:            "same_merchant_other_environment",
			environment:     "live",
			merchantAccount: "TestMerchant",
			creds: MerchantCredentials{
				Username: "ws_live",
				Password: "ws_live_pass",
				URLs: map[string]string{
					"authorise": "https://pal-live.example.com/authorise",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.SaveCredentials(tt.environment, tt.merchantAccount, tt.creds)
			require.NoError(t, err)

			loaded, err := storage.LoadCredentials(tt.environment, tt.merchantAccount)
			require.NoError(t, err)
			assert.Equal(t, tt.creds, loaded)
		})
	}
}

func TestSQLiteStorage_LoadCredentials_NotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.LoadCredentials("test", "Unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials found")
}

func TestSQLiteStorage_DeleteCredentials(t *testing.T) {
	storage := newTestStorage(t)

	creds := MerchantCredentials{Username: "ws_user", Password: "ws_pass"}
	require.NoError(t, storage.SaveCredentials("test", "TestMerchant", creds))

	require.NoError(t, storage.DeleteCredentials("test", "TestMerchant"))

	_, err := storage.LoadCredentials("test", "TestMerchant")
	assert.Error(t, err)

	// deleting again reports not found
	err = storage.DeleteCredentials("test", "TestMerchant")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials found")
}

func TestSQLiteStorage_MerchantsByEnvironment(t *testing.T) {
	storage := newTestStorage(t)

	creds := MerchantCredentials{Username: "u", Password: "p"}
	require.NoError(t, storage.SaveCredentials("test", "MerchantB", creds))
	require.NoError(t, storage.SaveCredentials("test", "MerchantA", creds))
	require.NoError(t, storage.SaveCredentials("live", "MerchantC", creds))

	merchants, err := storage.MerchantsByEnvironment("test")
	require.NoError(t, err)
	assert.Equal(t, []string{"MerchantA", "MerchantB"}, merchants)

	merchants, err = storage.MerchantsByEnvironment("staging")
	require.NoError(t, err)
	assert.Empty(t, merchants)
}

func TestSQLiteStorage_GetStats(t *testing.T) {
	storage := newTestStorage(t)

	creds := MerchantCredentials{Username: "u", Password: "p"}
	require.NoError(t, storage.SaveCredentials("test", "MerchantA", creds))
	require.NoError(t, storage.SaveCredentials("live", "MerchantA", creds))

	stats, err := storage.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats["total_credentials"])
	assert.Equal(t, 2, stats["unique_environments"])
	assert.Equal(t, storage.path, stats["db_path"])
}
