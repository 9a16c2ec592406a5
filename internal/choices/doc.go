// Package choices implements closed, labeled enumerations used to constrain
// the legal values of a record field.
//
// A Set is an ordered collection of entries. Every entry has a symbolic Name,
// a stored Value and a human-readable Label:
//
//	var Priority = choices.MustDefine("Priority",
//	    choices.Entry[string]{Name: "LOW", Value: "L", Label: "Low"},
//	    choices.Entry[string]{Name: "MEDIUM", Value: "M", Label: "Medium"},
//	    choices.Entry[string]{Name: "HIGH", Value: "H", Label: "High"},
//	)
//
// Names and values are unique within a set; labels are not. A set never
// changes after Define returns, so it can be shared by any number of
// goroutines without locking.
//
// # Lookups
//
//   - ValueOf: the value must exist, a miss is a *NotFoundError
//   - LabelOf: first entry with the label in definition order
//   - NameOf: comma-ok, a missing name is not an error
//   - All: lazy iteration in definition order, restartable
//
// # Composite values
//
// Any comparable type can be a value. Composite choices use a struct so that
// auxiliary data is read by field (entry.Value.Index) and equality covers
// every field.
//
// # Fields
//
// Field binds a set to a named record column. Field.Clean is the check a
// persistence layer runs before writing, and Field.DisplayOf renders the
// stored value for presentation.
package choices
