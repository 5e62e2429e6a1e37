// Package service holds the application services: account management and the
// idea library, including quota-checked idea generation.
package service
