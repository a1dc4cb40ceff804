// Package transfer implements the transfer order aggregate: an order moving
// goods between two locations, its line items and its approval workflow.
//
// The package includes:
//   - Order: the aggregate root holding header fields, location snapshots,
//     actor snapshots and line items
//   - LineItem: product, quantity and price entries whose totals roll up to the order
//   - Status and Action: the workflow table, resolved by Status.Apply
//   - Reduce: applies a Transition to a clone of an order and returns an Event
//
// Key business rules:
//   - Orders are created in Draft and can only be edited while in Draft
//   - Every illegal transition fails with a state conflict; repeating a
//     transition into a terminal state the order already holds is a no-op
//   - The order total always equals the sum of its line item totals
//   - Receipts are matched to items by item id; unmatched receipts are ignored
package transfer
