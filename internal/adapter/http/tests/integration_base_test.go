//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	dbadapter "taskboard/internal/adapter/db"
	"taskboard/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// IntegrationSuiteBase owns a throwaway MySQL schema named after MYSQL_DATABASE
// with a _test suffix. It connects as MYSQL_ROOT_USER so it can create and drop it.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	conf := config.LoadConfig()
	conf.DbUser = valueOr(os.Getenv("MYSQL_ROOT_USER"), "root")
	conf.DbPassword = valueOr(os.Getenv("MYSQL_ROOT_PASSWORD"), "root")
	testDBName := valueOr(os.Getenv("MYSQL_TEST_DATABASE"), conf.DbName+"_test")

	admin := *conf
	admin.DbName = ""
	adminDB, err := dbadapter.ConnectDB(&admin)
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", testDBName))
	s.Require().NoError(err)

	conf.DbName = testDBName
	s.DB, err = dbadapter.ConnectDB(conf)
	s.Require().NoError(err)
	s.testDBName = testDBName
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB == nil {
		return
	}
	if strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.adminDB.Close())
}

// ResetDatabase rebuilds the schema through the same goose migrations the
// server applies at start.
func (s *IntegrationSuiteBase) ResetDatabase() {
	resetSchema(s.T(), s.DB)
}

func resetSchema(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec(`
DROP TABLE IF EXISTS audit_logs;
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS users;
DROP TABLE IF EXISTS organizations;
DROP TABLE IF EXISTS goose_db_version;
`)
	require.NoError(t, err)
	require.NoError(t, dbadapter.Migrate(db, migrationsDir(t)))
}

func migrationsDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "..", "db", "migrations"))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
