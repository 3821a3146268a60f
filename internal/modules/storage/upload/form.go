package upload

import "mime/multipart"

// FromForm picks the first file submitted under field, if any.
func FromForm(form *multipart.Form, field string, rule Rule) (Incoming, bool) {
	if form == nil {
		return Incoming{}, false
	}
	fhs := form.File[field]
	if len(fhs) == 0 || fhs[0] == nil {
		return Incoming{}, false
	}
	return Incoming{Field: field, Header: fhs[0], Rule: rule}, true
}
