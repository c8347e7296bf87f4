package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestDB connects to MYSQL_TEST_DSN and empties the analytics tables.
// Tests are skipped when the variable is not set.
func newTestDB(t *testing.T) *MYSQLStore {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN is not set")
	}

	ctx := context.Background()
	db, err := New(ctx, Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	for _, q := range []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"DELETE FROM order_item",
		"DELETE FROM customer_order",
		"DELETE FROM product",
		"DELETE FROM category",
		"DELETE FROM customer",
		"SET FOREIGN_KEY_CHECKS = 1",
	} {
		_, err = db.db.ExecContext(ctx, q)
		require.NoError(t, err, q)
	}
	return db
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Ping(context.Background()))
}
