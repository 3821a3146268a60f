package testimonial

// CreateInput carries the text fields of a testimonial create request.
// Rating arrives as a form string; RatingSet distinguishes "absent, use
// the default of 5" from an explicit value.
type CreateInput struct {
	Name        string
	Testimonial string
	Rating      int
	RatingSet   bool
}
