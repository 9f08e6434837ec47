package traces

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/validation"
)

func validateAdd(req AddPropertyTrace) []string {
	return validation.NewRules().
		Check(req.PropertyID != uuid.Nil, "Property ID is required").
		Var(req.Name, "required", "Trace name is required").
		Var(req.Name, "max=200", "Trace name cannot exceed 200 characters").
		Check(req.Value > 0, "Value must be greater than zero").
		Check(req.Tax >= 0, "Tax cannot be negative").
		Check(!req.DateSale.After(time.Now()), "Sale date cannot be in the future").
		Messages()
}
