// Package view renders HTML pages, datastar fragments and email bodies.
// Every exported constructor returns a templ.Component so handlers can
// Render it directly or hand it to datastar's PatchElementTempl.
package view

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/msomdec/eventpass/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

// RegistrationForm is the data behind the public registration page.
type RegistrationForm struct {
	Input      domain.RegistrationInput
	Categories []domain.Category
	Errors     domain.FieldErrors
	Message    string
}

// RegistrationPage renders the public form, re-populated with the submitted
// values and their field errors when a submission was rejected.
func RegistrationPage(form RegistrationForm) templ.Component {
	return component("register_page", form)
}

// RegistrationSuccess renders the thank-you page after a successful submission.
func RegistrationSuccess(message string) templ.Component {
	return component("registered_page", struct{ Message string }{message})
}

// LoginPage renders the admin sign-in form.
func LoginPage(email, errMsg string) templ.Component {
	return component("login_page", struct{ Email, Error string }{email, errMsg})
}

// PassStatusData drives the per-row status fragment on the admin dashboard.
type PassStatusData struct {
	RegistrationID string
	Success        bool
	Message        string
	Archived       bool
}

// PassStatus renders the fragment patched into #pass-status-{id}.
func PassStatus(data PassStatusData) templ.Component {
	return component("pass_status", data)
}

// RegistrationRow is one line of the admin registrations table.
type RegistrationRow struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Category string
	Status   PassStatusData
}

// AdminDashboard renders the registrations table.
func AdminDashboard(displayName string, rows []RegistrationRow) templ.Component {
	return component("admin_page", struct {
		DisplayName string
		Rows        []RegistrationRow
	}{displayName, rows})
}

// CategoryForm holds the add-category form state.
type CategoryForm struct {
	Name        string
	Description string
}

// CategoriesPageData is the data behind the category management page.
type CategoriesPageData struct {
	DisplayName string
	Categories  []domain.Category
	Form        CategoryForm
	Errors      domain.FieldErrors
	Message     string
}

// AdminCategories renders the category management page.
func AdminCategories(data CategoriesPageData) templ.Component {
	return component("categories_page", data)
}

// ErrorPage renders a full-page error.
func ErrorPage(status int, title, message string) templ.Component {
	return component("error_page", struct {
		Status         int
		Title, Message string
	}{status, title, message})
}

// ConfirmationEmail is the body of the registration confirmation email.
func ConfirmationEmail(name string) templ.Component {
	return component("confirmation_email", struct{ Name string }{name})
}

// PassEmail is the body of the email carrying the registration pass.
func PassEmail(name string) templ.Component {
	return component("pass_email", struct{ Name string }{name})
}
