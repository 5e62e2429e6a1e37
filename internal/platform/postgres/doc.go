// Package postgres implements the internal/store interfaces on PostgreSQL
// through database/sql and the pgx stdlib driver. Ideas keep their generation
// request and content as JSONB documents. The schema lives in the embedded
// migrations subpackage.
package postgres
