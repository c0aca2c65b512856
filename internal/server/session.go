package server

import (
	"net/http"
)

// handleLoginSubmit processes the login form. Success stores the bearer
// token and lands on the map; failure re-renders the form with the message.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, "Invalid form submission")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		s.renderLogin(w, "Email and password are required")
		return
	}

	result, err := s.gw.Login(r.Context(), email, password)
	if err != nil {
		s.log.Warn("login failed", "email", email, "err", err)
		s.renderLogin(w, "Login failed, check your credentials")
		return
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "Login failed, check your credentials"
		}
		s.renderLogin(w, msg)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// registerSession wires the form-driven session routes. These stay plain
// handlers since they navigate between pages rather than patching one.
func (s *Server) registerSession() {
	s.mux.HandleFunc("/signup", s.handleSignup)
	s.mux.HandleFunc("/logout", s.handleLogout)
}

// handleSignup creates the account and logs straight in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, "Invalid form submission")
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if name == "" || email == "" || password == "" {
		s.renderLogin(w, "Name, email and password are required")
		return
	}

	if err := s.gw.SignUp(r.Context(), name, email, password); err != nil {
		s.log.Warn("signup failed", "email", email, "err", err)
		s.renderLogin(w, "Sign up failed")
		return
	}
	result, err := s.gw.Login(r.Context(), email, password)
	if err != nil || !result.Success {
		s.renderLogin(w, "Account created, please log in")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the stored credential and returns to the login page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := s.gw.Logout(r.Context()); err != nil {
		s.log.Warn("logout", "err", err)
	}
	s.modes.Deactivate()
	s.panel.Close()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
