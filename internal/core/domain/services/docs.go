// Package services contains stateless domain services coordinating multiple
// aggregates: the commit/uncommit cascade shared by shipments and deliveries.
package services
