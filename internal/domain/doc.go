// Package domain contains the core business entities of the application,
// independent of any specific infrastructure or delivery mechanism.
package domain
