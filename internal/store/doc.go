// Package store defines the persistence ports used by the application.
// Implementations live under internal/platform.
package store
