package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"weblog/internal/middleware"
	"weblog/internal/models"
	"weblog/internal/render"
	"weblog/internal/session"
	"weblog/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Weblog"

// Auth groups all authentication-related HTTP handlers: registration,
// login, logout, password change, and admin TOTP enrollment.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{renderer: renderer, sessions: sessions, users: users}
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  registerFormData("", "", ""),
	})
}

// RegisterSubmit creates a member account and logs the user in.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	displayName := r.FormValue("display_name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	fail := func(msg string) {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Data:  registerFormData(displayName, email, msg),
		})
	}

	if msg := validateRegistration(displayName, email, password, confirm); msg != "" {
		fail(msg)
		return
	}

	if taken, err := a.users.EmailExists(email); err != nil {
		slog.Error("email lookup failed", "error", err)
		fail("An unexpected error occurred.")
		return
	} else if taken {
		fail("That email address is already registered.")
		return
	}

	if taken, err := a.users.DisplayNameExists(displayName); err != nil {
		slog.Error("display name lookup failed", "error", err)
		fail("An unexpected error occurred.")
		return
	} else if taken {
		fail("That display name is already taken.")
		return
	}

	user, err := a.users.Create(email, password, displayName, models.RoleMember)
	if err != nil {
		slog.Error("create user failed", "error", err)
		fail("An unexpected error occurred.")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   true, // members have no 2FA step
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Log in",
		Data:  loginFormData("", ""),
	})
}

// LoginSubmit processes the login form. Admin accounts are routed through
// TOTP setup or verification; members go straight to the homepage.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.users.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data:  loginFormData(email, "An unexpected error occurred."),
		})
		return
	}

	if user == nil || !a.users.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data:  loginFormData(email, "Invalid email or password."),
		})
		return
	}

	// Admins must still pass TOTP before the session counts as complete.
	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   !user.IsAdmin(),
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	switch {
	case user.Needs2FASetup():
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	case user.IsAdmin():
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout destroys the session and redirects to the homepage.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PasswordChangePage renders the password change form.
func (a *Auth) PasswordChangePage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "password_change", &render.PageData{
		Title: "Change password",
		Data:  map[string]any{"error": "", "changed": false},
	})
}

// PasswordChangeSubmit verifies the current password and stores the new one.
func (a *Auth) PasswordChangeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("new_password_confirm")

	fail := func(msg string) {
		a.renderer.Page(w, r, "password_change", &render.PageData{
			Title: "Change password",
			Data:  map[string]any{"error": msg, "changed": false},
		})
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for password change failed", "error", err)
		fail("An unexpected error occurred.")
		return
	}

	if !a.users.CheckPassword(user, current) {
		fail("Current password is incorrect.")
		return
	}
	if len(newPassword) < minPasswordLen {
		fail("New password must be at least 8 characters.")
		return
	}
	if newPassword != confirm {
		fail("New passwords do not match.")
		return
	}

	if err := a.users.UpdatePassword(user.ID, newPassword); err != nil {
		slog.Error("update password failed", "error", err)
		fail("An unexpected error occurred.")
		return
	}

	a.renderer.Page(w, r, "password_change", &render.PageData{
		Title: "Change password",
		Data:  map[string]any{"error": "", "changed": true},
	})
}

// TwoFASetupPage generates a TOTP secret for the admin and displays the
// QR code. Re-visiting regenerates the secret until enrollment completes.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	// Only admin accounts enroll; setup writes a TOTP secret onto the
	// account, so the role check lives here as well as in the router.
	if !sess.IsAdmin() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.render2FASetup(w, r, key.URL(), key.Secret(), "")
}

// TwoFAVerifyPage renders the 2FA code entry form for admins who already
// completed enrollment.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-factor verification",
		Data:  map[string]any{"error": ""},
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		if !user.TOTPEnabled {
			// Still enrolling: redisplay the setup page with the same secret.
			uri := "otpauth://totp/" + totpIssuer + ":" + user.Email +
				"?secret=" + *user.TOTPSecret + "&issuer=" + totpIssuer
			a.render2FASetup(w, r, uri, *user.TOTPSecret, "Invalid code. Please try again.")
			return
		}
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-factor verification",
			Data:  map[string]any{"error": "Invalid code. Please try again."},
		})
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// render2FASetup encodes the otpauth URI as a QR code and renders the
// setup page.
func (a *Auth) render2FASetup(w http.ResponseWriter, r *http.Request, uri, secret, errMsg string) {
	qrPNG, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Two-factor setup",
		Data: map[string]any{
			"qrBase64": base64.StdEncoding.EncodeToString(qrPNG),
			"secret":   secret,
			"error":    errMsg,
		},
	})
}

func registerFormData(displayName, email, errMsg string) map[string]any {
	return map[string]any{
		"displayName": displayName,
		"email":       email,
		"error":       errMsg,
	}
}

func loginFormData(email, errMsg string) map[string]any {
	return map[string]any{"email": email, "error": errMsg}
}
