package properties

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/pkg/validation"
)

func detailRules(rules *validation.Rules, name, description, address string, price float64, year int) *validation.Rules {
	return rules.
		Var(name, "required", "Property name is required").
		Var(name, "max=200", "Property name cannot exceed 200 characters").
		Var(description, "max=1000", "Description cannot exceed 1000 characters").
		Var(address, "required", "Address is required").
		Var(address, "max=500", "Address cannot exceed 500 characters").
		Var(price, "gt=0", "Price must be greater than 0").
		Var(price, "lte=99999999999", "Price cannot exceed 99,999,999,999").
		Check(year > 1800, "Year must be greater than 1800").
		Check(year <= time.Now().Year()+5, "Year cannot be more than 5 years in the future")
}

func validateCreate(req CreateProperty) []string {
	return detailRules(validation.NewRules(), req.Name, req.Description, req.Address, req.Price, req.Year).
		Messages()
}

func validateUpdate(req UpdateProperty) []string {
	rules := validation.NewRules().Check(req.PropertyID != uuid.Nil, "Property ID is required")
	return detailRules(rules, req.Name, req.Description, req.Address, req.Price, req.Year).
		Messages()
}

func validatePrice(req UpdatePropertyPrice) []string {
	return validation.NewRules().
		Check(req.PropertyID != uuid.Nil, "PropertyId is required.").
		Check(req.NewPrice >= 0, "Price must be greater than or equal to zero.").
		Messages()
}

func validateDelete(req DeleteProperty) []string {
	return validation.NewRules().
		Check(req.PropertyID != uuid.Nil, "Property ID is required").
		Messages()
}

// searchValidator bounds the page size by the configured maximum and keeps
// the page window within int range.
func searchValidator(maxPageSize int) validation.Func[SearchProperties] {
	return func(req SearchProperties) []string {
		rules := validation.NewRules()

		if req.MinPrice != nil {
			rules.Check(*req.MinPrice >= 0, "Minimum price must be greater than or equal to zero.")
		}
		if req.MaxPrice != nil {
			rules.Check(*req.MaxPrice >= 0, "Maximum price must be greater than or equal to zero.")
		}
		if req.MinPrice != nil && req.MaxPrice != nil {
			rules.Check(*req.MinPrice <= *req.MaxPrice, "Minimum price must be less than or equal to maximum price.")
		}
		if req.Name != nil {
			rules.Var(*req.Name, "max=100", "Name filter must not exceed 100 characters.")
		}
		if req.Address != nil {
			rules.Var(*req.Address, "max=200", "Address filter must not exceed 200 characters.")
		}

		return rules.
			Check(req.Page >= 1, "Page number must be greater than or equal to 1.").
			Check(req.PageSize > 0, "Page size must be greater than zero.").
			Check(req.PageSize <= maxPageSize, fmt.Sprintf("Page size must not exceed %d.", maxPageSize)).
			Check(req.PageSize <= 0 || req.Page <= math.MaxInt/req.PageSize, "Page number is too large for the requested page size.").
			Messages()
	}
}
