package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/user-registration/app/internal/database"
	"github.com/user-registration/app/internal/logging"
	"github.com/user-registration/app/internal/models"
	"github.com/user-registration/app/internal/registration"
)

// Banner texts for infrastructure failures.
const (
	BannerStoreCreate      = "Error creating users file. Please check permissions."
	BannerStorePermissions = "Error setting file permissions for users.json."
	BannerStoreRead        = "Error reading users file."
	BannerStoreWrite       = "Error saving user data."
	BannerInternal         = "Error processing registration."
)

const registerTemplate = "register.html"

// registerPageData feeds register.html.
type registerPageData struct {
	Title       string
	FileError   string
	Success     string
	Name        string
	Email       string
	Errors      map[string]string
	SelfTests   []registration.SelfTestResult
	CurrentYear int
}

func newRegisterPageData() *registerPageData {
	return &registerPageData{
		Title:       "User Registration System",
		Errors:      map[string]string{},
		SelfTests:   registration.RunSelfTests(),
		CurrentYear: time.Now().Year(),
	}
}

// NewRouter wires the registration form to its single path. storeErr is the
// result of ensuring the store at startup; when it is non-nil every page
// shows the failure and submissions are not processed.
func NewRouter(reg *registration.Registrar, storeErr error) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			RenderErrorPage(w, r, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
			return
		}

		switch r.Method {
		case http.MethodGet:
			RegisterPage(storeErr)(w, r)
		case http.MethodPost:
			Register(reg, storeErr)(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			RenderErrorPage(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", "This method is not supported for /.")
		}
	})

	return mux
}

// RegisterPage renders the empty registration form and the self-test table.
func RegisterPage(storeErr error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := newRegisterPageData()
		if storeErr != nil {
			data.FileError = bannerFor(storeErr)
			renderTemplate(w, statusFor(storeErr), registerTemplate, data)
			return
		}
		RenderTemplate(w, registerTemplate, data)
	}
}

// Register handles the registration form submission.
func Register(reg *registration.Registrar, storeErr error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := newRegisterPageData()

		if storeErr != nil {
			data.FileError = bannerFor(storeErr)
			renderTemplate(w, statusFor(storeErr), registerTemplate, data)
			return
		}

		if err := r.ParseForm(); err != nil {
			RenderErrorPage(w, r, http.StatusBadRequest, "Bad Request", "Error parsing form.")
			return
		}

		sub := models.Submission{
			Name:            r.PostFormValue("name"),
			Email:           r.PostFormValue("email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}

		out, err := reg.Register(r.Context(), sub)
		if err != nil {
			logging.FromContext(r.Context()).Error("registration failed", "error", err)
			data.FileError = bannerFor(err)
			renderTemplate(w, statusFor(err), registerTemplate, data)
			return
		}

		data.Name = out.Name
		data.Email = out.Email
		data.Success = out.Success
		for f, msg := range out.Errors {
			data.Errors[string(f)] = msg
		}

		RenderTemplate(w, registerTemplate, data)
	}
}

func bannerFor(err error) string {
	switch {
	case errors.Is(err, database.ErrStorePermissions):
		return BannerStorePermissions
	case errors.Is(err, database.ErrStoreUnavailable):
		return BannerStoreCreate
	case errors.Is(err, database.ErrStoreRead):
		return BannerStoreRead
	case errors.Is(err, database.ErrStoreWrite):
		return BannerStoreWrite
	default:
		return BannerInternal
	}
}

func statusFor(err error) int {
	if errors.Is(err, database.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
