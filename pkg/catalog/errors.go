package catalog

import "github.com/zeebo/errs"

var (
	// NotFound is the class of errors for course codes or sections absent from the table
	NotFound = errs.Class("not found")
	// LoadFailure is the class of errors for unreadable or malformed source data
	LoadFailure = errs.Class("load failure")
)
