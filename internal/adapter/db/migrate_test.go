package db

import (
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrationLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	var logger goose.Logger = migrationLogger()
	logger.Printf("OK   %s", "20260301090000_create_organizations_table.sql")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "migrate", entries[0].LoggerName)
	require.Contains(t, entries[0].Message, "create_organizations_table")
}
