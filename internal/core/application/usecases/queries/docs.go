// Package queries contains read-only operations in the CQRS split.
//
// Most handlers read the database directly with raw SQL and return flat
// response models, bypassing the aggregates. The two worker-facing views
// (ListMyJobs, GetStep) instead load aggregates through the order repository
// and evaluate turn order with the domain's TurnResolver, so the actionability
// shown to a worker is always computed fresh by the same rules the commands
// enforce.
package queries
