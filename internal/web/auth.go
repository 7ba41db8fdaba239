package web

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/auth"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Staff Login"})
}

// LoginSubmit handles POST /login. Credentials are checked against the
// single staff account from configuration.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Staff Login",
			Error: "Enter a username and password.",
		})
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Config.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.Config.AdminPasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Staff Login",
			Error: "Incorrect username or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.Config.SessionSecret, username)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Staff Login",
			Error: "Login failed, please try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})

	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
