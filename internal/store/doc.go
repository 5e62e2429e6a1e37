// Package store defines the persistence interfaces for users and their idea
// library, together with the errors implementations return. The Postgres
// implementations live in internal/platform/postgres.
package store
