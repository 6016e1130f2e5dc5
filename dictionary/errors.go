package dictionary

import "errors"

// Metadata errors, returned when an array's JSON attributes are
// missing a key the Dictionary needs to reconstruct itself.
var (
	ErrSubjectsNotInJSON        = errors.New("dictionary: \"subjects\" key missing from attributes")
	ErrPredicatesNotInJSON      = errors.New("dictionary: \"predicates\" key missing from attributes")
	ErrObjectsNotInJSON         = errors.New("dictionary: \"objects\" key missing from attributes")
	ErrReferenceSystemNotInJSON = errors.New("dictionary: \"reference_system\" key missing from attributes")

	// DictionaryMissing is returned when none of the dictionary keys
	// are present at all, e.g. the attributes object is empty.
	DictionaryMissing = errors.New("dictionary: attributes carry no dictionary")
)
