//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests: locating
// the test database, applying the embedded migrations and isolating each test
// in a transaction that is rolled back.
//
// Tests using this package are compiled only with the integration build tag
// and are skipped when no database URL is set:
//
//	db := testdb.OpenTestDB(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    users := postgres.NewPostgresUserStore(tx, nil)
//	    ...
//	})
package testdb
