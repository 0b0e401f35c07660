package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.AuthTokenTTL)
	assert.False(t, cfg.AuthEnabled())
	assert.Contains(t, cfg.PostgresDSN(), "dbname=sdtech_db")
}

func TestLoad_HostedByDefaultWhenSupabaseURLSet(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SUPABASE_DB_URL", "postgres://u:p@db.example.supabase.co:5432/postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendHosted, cfg.StorageBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "postgres", cfg: Config{Port: "5000", StorageBackend: BackendPostgres}},
		{name: "hosted without url", cfg: Config{Port: "5000", StorageBackend: BackendHosted}, wantErr: true},
		{name: "hosted", cfg: Config{Port: "5000", StorageBackend: BackendHosted, SupabaseDBURL: "postgres://x"}},
		{name: "unknown backend", cfg: Config{Port: "5000", StorageBackend: "mongo"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN_PrefersDatabaseURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://a:b@h/db", DBHost: "ignored"}
	assert.Equal(t, "postgres://a:b@h/db", cfg.PostgresDSN())
}

func TestDatabaseDSN_FollowsBackend(t *testing.T) {
	cfg := Config{StorageBackend: BackendHosted, SupabaseDBURL: "postgres://pooler/db", DatabaseURL: "postgres://direct/db"}
	assert.Equal(t, "postgres://pooler/db", cfg.DatabaseDSN())

	cfg.StorageBackend = BackendPostgres
	assert.Equal(t, "postgres://direct/db", cfg.DatabaseDSN())
}
