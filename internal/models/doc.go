// Package models defines the core domain models for the shopping list.
//
// # Aggregates
//
// Group is the root aggregate. Every Merchant, Category, Item and
// ReferenceItem belongs to exactly one Group and is deleted with it.
// SupportTicket is global and belongs to no group.
//
//   - Group: a named set of users sharing one list (manager, members, leaders)
//   - Merchant: a shop items can be bought at, unique per group by name
//   - Category: a grouping for reference items, can be deactivated
//   - Item: a purchase request moving from Open to Purchased or Cancelled
//   - ReferenceItem: a suggested item with a recommendation
//   - SupportTicket: an issue raised by a user
//
// # Identifiers
//
// Entities use UUID strings for IDs and reference each other (and users)
// by ID rather than by pointer. Timestamps are Unix seconds; zero means unset.
package models
