package dictionary

// Attributes is the JSON shape persisted alongside the on-disk array:
// three term lists in index order, plus the reference-system tag. It
// is the sole vehicle for round-tripping a Dictionary through storage.
type Attributes struct {
	Subjects        []string `json:"subjects"`
	Predicates      []string `json:"predicates"`
	Objects         []string `json:"objects"`
	ReferenceSystem string   `json:"reference_system"`
}

// ToAttributes renders d plus a reference-system tag into the JSON
// attribute shape written to array metadata.
func (d *Dictionary) ToAttributes(referenceSystem string) Attributes {
	return Attributes{
		Subjects:        d.Subjects.Strings(),
		Predicates:      d.Predicates.Strings(),
		Objects:         d.Objects.Strings(),
		ReferenceSystem: referenceSystem,
	}
}

// FromAttributes reconstructs a Dictionary (and the reference-system
// tag) from array metadata read back on load. It validates that every
// required key is present, independently of the others, so a caller
// can report precisely which key was missing.
func FromAttributes(attrs Attributes) (*Dictionary, string, error) {
	if attrs.Subjects == nil && attrs.Predicates == nil && attrs.Objects == nil && attrs.ReferenceSystem == "" {
		return nil, "", DictionaryMissing
	}
	if attrs.Subjects == nil {
		return nil, "", ErrSubjectsNotInJSON
	}
	if attrs.Predicates == nil {
		return nil, "", ErrPredicatesNotInJSON
	}
	if attrs.Objects == nil {
		return nil, "", ErrObjectsNotInJSON
	}
	if attrs.ReferenceSystem == "" {
		return nil, "", ErrReferenceSystemNotInJSON
	}

	s, err := NewSet(attrs.Subjects)
	if err != nil {
		return nil, "", err
	}
	p, err := NewSet(attrs.Predicates)
	if err != nil {
		return nil, "", err
	}
	o, err := NewSet(attrs.Objects)
	if err != nil {
		return nil, "", err
	}
	return &Dictionary{Subjects: s, Predicates: p, Objects: o}, attrs.ReferenceSystem, nil
}
