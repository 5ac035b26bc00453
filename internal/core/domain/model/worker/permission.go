package worker

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// Permission is a named grant authorizing a category of mutating action.
// Permissions are granted to workers directly; they are never inherited
// through roles or hierarchies.
type Permission string

// Order management permissions (category ORDER).
const (
	PermissionOrderCreate Permission = "ORDER_CREATE"
	PermissionOrderRead   Permission = "ORDER_READ"
	PermissionOrderUpdate Permission = "ORDER_UPDATE"
	PermissionOrderDelete Permission = "ORDER_DELETE"
)

// Production step permissions (category PRODUCTION).
//
// PermissionStepExecute authorizes starting, completing and annotating steps
// the worker is eligible for. PermissionStepOverride additionally authorizes
// acting on steps assigned to somebody else and blocking/unblocking steps.
const (
	PermissionStepExecute  Permission = "STEP_EXECUTE"
	PermissionStepOverride Permission = "STEP_OVERRIDE"
)

// Permission categories.
const (
	CategoryOrder      = "ORDER"
	CategoryProduction = "PRODUCTION"
)

func permissionCategories() map[Permission]string {
	return map[Permission]string{
		PermissionOrderCreate:  CategoryOrder,
		PermissionOrderRead:    CategoryOrder,
		PermissionOrderUpdate:  CategoryOrder,
		PermissionOrderDelete:  CategoryOrder,
		PermissionStepExecute:  CategoryProduction,
		PermissionStepOverride: CategoryProduction,
	}
}

// Category returns the category the permission belongs to, or an empty string
// for an unknown permission.
func (p Permission) Category() string {
	return permissionCategories()[p]
}

// Validate checks that the permission is one of the known grants.
func (p Permission) Validate() error {
	if _, ok := permissionCategories()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("permission", fmt.Errorf("%q is not a known permission", string(p)))
	}
	return nil
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return string(p)
}
