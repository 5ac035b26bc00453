// Package worker contains the Worker aggregate and the permission model.
//
// A worker belongs to exactly one company (the tenant boundary) and carries a
// flat set of granted permissions. There is no role hierarchy: authorization
// is a single lookup in the grant set, short-circuited by the company-owner
// flag which implicitly grants every permission within the company.
package worker
