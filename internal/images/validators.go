package images

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/validation"
)

func validateAdd(req AddPropertyImage) []string {
	return validation.NewRules().
		Check(req.PropertyID != uuid.Nil, "Property ID is required").
		Var(req.File, "required", "File path is required").
		Var(req.File, "max=500", "File path cannot exceed 500 characters").
		Messages()
}

func validateUpload(req UploadPropertyImage) []string {
	return validation.NewRules().
		Check(req.PropertyID != uuid.Nil, "Property ID is required").
		Check(len(req.Data) > 0, "No file was uploaded").
		Messages()
}
