package dashboard

import (
	"github.com/charmbracelet/huh"

	"github.com/edumanage/edudash/internal/backend"
)

// formMode selects which auth form is shown.
type formMode int

const (
	formSignIn formMode = iota
	formSignUp
)

// newAuthForm builds the sign-in or registration form. Values are read back
// by key once the form completes.
func newAuthForm(mode formMode) *huh.Form {
	email := huh.NewInput().
		Key("email").
		Title("Email").
		Placeholder("you@school.edu")

	password := huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword)

	if mode == formSignIn {
		return huh.NewForm(
			huh.NewGroup(email, password),
		).WithShowHelp(false)
	}

	fullName := huh.NewInput().
		Key("full_name").
		Title("Full Name")

	role := huh.NewSelect[string]().
		Key("role").
		Title("Role").
		Options(
			huh.NewOption("Student", string(backend.RoleStudent)),
			huh.NewOption("Teacher", string(backend.RoleTeacher)),
			huh.NewOption("Parent", string(backend.RoleParent)),
			huh.NewOption("Administrator", string(backend.RoleAdmin)),
		)

	return huh.NewForm(
		huh.NewGroup(fullName, email, password, role),
	).WithShowHelp(false)
}
