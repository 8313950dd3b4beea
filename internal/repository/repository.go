// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and report a missing row as sql.ErrNoRows;
// translating that into a domain error is the service layer's job.
package repository

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
