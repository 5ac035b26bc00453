// Package product contains the Product entity and its reusable step template.
//
// A product's template is the ordered list of named production steps from
// which concrete step instances are created when an order is placed. Editing
// a template never retroactively affects already-instantiated orders: the
// template is copied into the order at creation time.
package product
