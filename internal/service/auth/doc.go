// Package auth issues and validates JWT access and refresh tokens and hashes
// user passwords with bcrypt.
package auth
