// Package kernel provides the value objects shared by every part of the transfer domain.
//
// The package includes:
//   - UUID: identifier value object for orders, line items and locations
//   - Actor and ActorSnapshot: who performed an action, frozen at the time it happened
//   - LocationType, Contact and LocationSnapshot: transfer endpoints as copied onto orders
//
// All value objects are immutable. Zero values fail Validate, so objects must be
// created through their constructors.
package kernel
