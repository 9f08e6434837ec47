package auth

import (
	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/validation"
)

func validateLogin(req Login) []string {
	return validation.NewRules().
		Var(req.Email, "required", "Email is required").
		Var(req.Password, "required", "Password is required").
		Messages()
}

func validateRegister(req Register) []string {
	rules := validation.NewRules().
		Var(req.Email, "required", "Email is required").
		Var(req.Email, "omitempty,email", "Email is not a valid address").
		Var(req.Email, "max=256", "Email cannot exceed 256 characters").
		Var(req.Password, "min=8", "Password must be at least 8 characters").
		Var(req.FirstName, "required", "First name is required").
		Var(req.FirstName, "max=100", "First name cannot exceed 100 characters").
		Var(req.LastName, "required", "Last name is required").
		Var(req.LastName, "max=100", "Last name cannot exceed 100 characters").
		Check(domain.Role(req.Role).Valid(), "Role must be Owner or Client")

	if domain.Role(req.Role) == domain.RoleOwner {
		rules.Check(req.OwnerID != nil, "Owner ID is required for owner accounts")
	}

	return rules.Messages()
}
