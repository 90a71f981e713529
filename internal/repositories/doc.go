// Package repositories implements the optional SQLite persistence used by sleeve.
//
// Key Implementations:
//   - [ArtworkRepository] : downloaded album-art bytes keyed by URL (implements services.ArtworkCache)
//   - [RunRepository] : one row per generated sleeve, for `sleeve cache stats`
//
// The schema is created by shared.RunMigrations. Both repositories are opt-in; a run without
// the cache never opens a database.
package repositories
