package services

import (
	"testing"

	"bounty-board/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The bounty row must be locked on Postgres; SQLite rejects the clause and
// serializes writers on its own.
func TestLockForUpdateByDialect(t *testing.T) {
	pg, err := gorm.Open(postgres.Open("host=localhost user=bounty dbname=bounty"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var bounty models.Bounty
	stmt := lockForUpdate(pg).First(&bounty, "id = ?", "some-id").Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")

	lite := newTestDB(t).Session(&gorm.Session{DryRun: true})
	stmt = lockForUpdate(lite).First(&bounty, "id = ?", "some-id").Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
