// Package models defines the core domain models for the restaurant review data layer.
//
// # Models
//
//   - Customer: a person who writes reviews
//   - Restaurant: a place that receives reviews
//   - Review: the join record linking one Customer to one Restaurant with a rating
//
// # Design Principles
//
// 1. **Validated construction**: NewCustomer, NewRestaurant and NewReview fail fast
// with a *ValidationError instead of deferring checks to persist time
// 2. **Foreign keys, not back-references**: a Review carries CustomerID and
// RestaurantID; the Reviews slices on Customer and Restaurant are filled in by
// the storage layer through explicit lookups
// 3. **No persistence concerns**: models never talk to a store; ranking across
// restaurants lives in the service package
//
// IDs are strings assigned by the store (UUIDv7), so lexical ID order matches
// insertion order.
package models
