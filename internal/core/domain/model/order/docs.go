// Package order contains the Order aggregate: the manufacturing order, its
// items, and the concrete production step instances workers complete in
// sequence.
//
// The aggregate owns the workflow invariants:
//
//   - A step's number defines strict precedence within its product group:
//     step n cannot leave WAITING while any step m < n of the same group is
//     not COMPLETED.
//   - The order status is a pure function of its steps' statuses. An order is
//     COMPLETED if and only if every step is COMPLETED; the cascade is
//     recomputed on every step mutation, never stored independently.
//   - Steps are mutated only through the aggregate's transition methods,
//     which validate the step state machine
//     (WAITING -> IN_PROGRESS -> COMPLETED, WAITING <-> BLOCKED).
//
// Turn eligibility is exposed as a derived read (IsStepTurn) and is never
// persisted, so a sibling step completing can never leave stale eligibility
// behind.
package order
