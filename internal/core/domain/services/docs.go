// Package services contains stateless domain services coordinating logic that
// spans aggregates: expanding product step templates into concrete step
// instances for a new order, and resolving whose turn it is across the step
// instances a worker can see.
package services
