// Package store provides persistence implementations for movie reviews.
// The ReviewStore interface is defined in the parent package
// (../store_interface.go) to avoid import cycles.
//
// This package contains concrete implementations:
//   - DynamoDBStore: AWS DynamoDB backend over the MovieReviews table
//   - MemoryStore: In-memory backend for tests and local runs
//
// Table layout and key schema are defined in schema.go; seed data in seed.go.
package store
