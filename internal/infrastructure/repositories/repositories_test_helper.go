package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance TEXT NOT NULL DEFAULT '0.00',
		bonus_balance TEXT NOT NULL DEFAULT '0.00',
		currency TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		balance_before TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_provider TEXT,
		external_ref TEXT UNIQUE,
		metadata TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBonusTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bonuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		amount TEXT NOT NULL,
		wagering_multiplier TEXT NOT NULL,
		expiry_days INTEGER NOT NULL DEFAULT 30,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_bonuses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		bonus_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		wagered_amount TEXT NOT NULL DEFAULT '0.00',
		required_wagering TEXT NOT NULL,
		status TEXT NOT NULL,
		released BOOLEAN NOT NULL DEFAULT 0,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		phone TEXT,
		pin_hash TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
