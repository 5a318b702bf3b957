package wikiextract

import "strings"

// Result maps a field name to the text extracted for it, in document order.
//
// A field whose query matched nothing is present with an empty slice.
// A field whose query could not be evaluated is absent.
type Result map[string][]string

// Title returns the record identifier: the first value of the title field
// with surrounding whitespace removed. The stored value itself is kept as
// extracted. Returns ENOTITLE if the field is absent, empty, or blank.
func (r Result) Title() (string, error) {
	values, ok := r[TitleField]
	if !ok {
		return "", Errorf(ENOTITLE, "no %q field was extracted", TitleField)
	}
	if len(values) == 0 {
		return "", Errorf(ENOTITLE, "%q field is empty", TitleField)
	}
	title := strings.TrimSpace(values[0])
	if title == "" {
		return "", Errorf(ENOTITLE, "%q field is empty", TitleField)
	}
	return title, nil
}

// Len returns the total number of extracted strings across all fields.
func (r Result) Len() int {
	n := 0
	for _, values := range r {
		n += len(values)
	}
	return n
}
