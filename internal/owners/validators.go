package owners

import (
	"time"

	"github.com/JaimeStill/million/pkg/validation"
)

func validateCreate(req CreateOwner) []string {
	rules := validation.NewRules().
		Var(req.Name, "required", "Name is required.").
		Var(req.Name, "max=100", "Name must not exceed 100 characters.").
		Var(req.Address, "required", "Address is required.").
		Var(req.Address, "max=200", "Address must not exceed 200 characters.").
		Check(!req.Birthday.IsZero(), "Birthday is required.").
		Check(req.Birthday.Before(time.Now()), "Birthday must be in the past.")

	if req.Photo != nil {
		rules.Var(*req.Photo, "max=500", "Photo URL must not exceed 500 characters.")
	}

	return rules.Messages()
}
