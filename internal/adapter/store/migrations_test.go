package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"invidx/config"
)

func TestCheckMigration_FreshJournal(t *testing.T) {
	st := openStore(t)

	result, err := st.CheckMigration(config.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, result.NeedsMigration)
	assert.False(t, result.NeedsRebuild)
	assert.Equal(t, 0, result.OldVersion)
	assert.Equal(t, CurrentSchemaVersion, result.NewVersion)
}

func TestCheckMigration_UpToDate(t *testing.T) {
	st := openStore(t)
	cfg := config.DefaultConfig()
	require.NoError(t, st.Migrate(cfg))

	result, err := st.CheckMigration(cfg)
	require.NoError(t, err)
	assert.False(t, result.NeedsMigration)
	assert.False(t, result.NeedsRebuild)
}

func TestCheckMigration_ConfigChanged(t *testing.T) {
	st := openStore(t)
	cfg := config.DefaultConfig()
	require.NoError(t, st.Migrate(cfg))

	changed := config.DefaultConfig()
	changed.Index.MaxWordLen = 10
	result, err := st.CheckMigration(changed)
	require.NoError(t, err)
	assert.True(t, result.NeedsRebuild)
	assert.Equal(t, "index configuration changed", result.Reason)
}

func TestCheckMigration_NewerVersion(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SetSchemaInfo(&SchemaInfo{Version: CurrentSchemaVersion + 1}))

	result, err := st.CheckMigration(config.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, result.NeedsRebuild)
}

func TestComputeConfigHash(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	assert.Equal(t, ComputeConfigHash(a), ComputeConfigHash(b))

	b.Logging.Level = "debug"
	assert.Equal(t, ComputeConfigHash(a), ComputeConfigHash(b), "logging does not affect the hash")

	b.Index.MaxDocumentIDLen = 40
	assert.NotEqual(t, ComputeConfigHash(a), ComputeConfigHash(b))
}
