// Package services holds domain logic that works over many transfer orders
// at once rather than inside a single aggregate.
//
// The package includes:
//   - StatisticsAggregator: derives dashboard statistics from the full order set
//   - TransferQueryEngine: search, filter, sort and pagination over an order list
package services
