package model

import "github.com/zeebo/errs"

// InvalidSelection is the class of errors returned when a SelectionSet cannot be
// read as a single course
var InvalidSelection = errs.Class("invalid selection")
