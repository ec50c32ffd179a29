// Package kernel contains shared value objects used across all domain
// aggregates: entity identities (UUID) and the constructor guard pattern.
package kernel
