package project

import (
	"mime/multipart"

	"github.com/terravista/estate-core/internal/pkg/form"
)

// CreateInput carries the text fields of a project create request. File
// fields travel separately through the upload pipeline.
type CreateInput struct {
	Name        string
	Size        string
	Location    string
	Price       string
	Facing      string
	Status      string
	Description string
}

func createInputFromForm(f *multipart.Form) CreateInput {
	return CreateInput{
		Name:        form.Str(f, "name"),
		Size:        form.Str(f, "size"),
		Location:    form.Str(f, "location"),
		Price:       form.Str(f, "price"),
		Facing:      form.Str(f, "facing"),
		Status:      form.Str(f, "status"),
		Description: form.Str(f, "description"),
	}
}
