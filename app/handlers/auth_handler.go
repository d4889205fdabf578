package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/services"
	"github.com/graple254/bazaa/app/utils/sessions"
	"github.com/unrolled/render"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	otpRepo      repositories.OTPRepositoryImpl
	sessionStore sessions.SessionStore
	mailer       *services.Mailer
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, otpRepo repositories.OTPRepositoryImpl, sessionStore sessions.SessionStore, mailer *services.Mailer, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		sessionStore: sessionStore,
		mailer:       mailer,
		validator:    validator,
	}
}

type SignupForm struct {
	Username string `form:"username" validate:"required,min=3,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

func (h *AuthHandler) IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Bazaa Digital"})
	_ = h.render.HTML(w, http.StatusOK, "index", data)
}

func (h *AuthHandler) SignupGetHandler(w http.ResponseWriter, r *http.Request) {
	if user := helpers.CurrentUser(r); user != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Sign Up"})
	_ = h.render.HTML(w, http.StatusOK, "auth/signup", data)
}

func (h *AuthHandler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("SignupPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	form := SignupForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		data := helpers.GetBaseData(r, map[string]interface{}{
			"Title":  "Sign Up",
			"Form":   form,
			"Errors": helpers.FormatValidationErrors(validationErrors),
		})
		_ = h.render.HTML(w, http.StatusOK, "auth/signup", data)
		return
	}

	if existing, err := h.userRepo.FindByUsername(r.Context(), form.Username); err != nil {
		log.Printf("SignupPostHandler: username lookup failed: %v", err)
		h.renderSignupError(w, r, form, "Something went wrong. Please try again.")
		return
	} else if existing != nil {
		h.renderSignupError(w, r, form, "Username already taken.")
		return
	}

	if existing, err := h.userRepo.FindByEmail(r.Context(), form.Email); err != nil {
		log.Printf("SignupPostHandler: email lookup failed: %v", err)
		h.renderSignupError(w, r, form, "Something went wrong. Please try again.")
		return
	} else if existing != nil {
		h.renderSignupError(w, r, form, "Email already registered.")
		return
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     models.RoleShopManager,
		IsActive: false,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		if err == repositories.ErrDuplicate {
			h.renderSignupError(w, r, form, "Username or email already registered.")
			return
		}
		log.Printf("SignupPostHandler: failed to create user %s: %v", form.Email, err)
		h.renderSignupError(w, r, form, "Could not create your account. Please try again.")
		return
	}

	code := helpers.GenerateVerificationCode()
	if _, err := h.otpRepo.Create(r.Context(), user.ID, code); err != nil {
		log.Printf("SignupPostHandler: failed to store OTP for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Could not create a verification code. Please log in to retry."), http.StatusSeeOther)
		return
	}

	// Account creation stands even if the email never leaves; the user is
	// told the send may have failed.
	verifyURL := fmt.Sprintf("/verify?email=%s", url.QueryEscape(form.Email))
	if err := h.mailer.SendHTMLEmail(form.Email, "Your Bazaa Digital Verification Code", services.BuildVerificationEmailBody(code)); err != nil {
		log.Printf("SignupPostHandler: verification email to %s failed: %v", form.Email, err)
		verifyURL += "&status=warning&message=" + url.QueryEscape("Your account was created, but the verification email may not have been sent.")
	}

	http.Redirect(w, r, verifyURL, http.StatusSeeOther)
}

func (h *AuthHandler) renderSignupError(w http.ResponseWriter, r *http.Request, form SignupForm, message string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Sign Up",
		"Form":          form,
		"Message":       message,
		"MessageStatus": "error",
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/signup", data)
}

func (h *AuthHandler) VerifyGetHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("No email provided."), http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Verify Your Account",
		"Email": email,
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/verify", data)
}

func (h *AuthHandler) VerifyPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("VerifyPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	if email == "" {
		email = r.URL.Query().Get("email")
	}
	if email == "" {
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("No email provided."), http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("VerifyPostHandler: lookup for %s failed: %v", email, err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Something went wrong. Please try again."), http.StatusSeeOther)
		return
	}
	if user == nil {
		http.NotFound(w, r)
		return
	}

	otp, err := h.otpRepo.FindLatestUnused(r.Context(), user.ID)
	if err != nil {
		log.Printf("VerifyPostHandler: OTP lookup for user %s failed: %v", user.ID, err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Something went wrong. Please try again."), http.StatusSeeOther)
		return
	}
	if otp == nil {
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("No verification code found. Please sign up again."), http.StatusSeeOther)
		return
	}

	if otp.Code != r.PostFormValue("otp") {
		data := helpers.GetBaseData(r, map[string]interface{}{
			"Title":         "Verify Your Account",
			"Email":         email,
			"Message":       "Invalid verification code.",
			"MessageStatus": "error",
		})
		_ = h.render.HTML(w, http.StatusOK, "auth/verify", data)
		return
	}

	if err := h.userRepo.Activate(r.Context(), user.ID); err != nil {
		log.Printf("VerifyPostHandler: failed to activate user %s: %v", user.ID, err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Could not activate your account. Please try again."), http.StatusSeeOther)
		return
	}

	if err := h.otpRepo.MarkUsed(r.Context(), otp.ID); err != nil {
		log.Printf("VerifyPostHandler: failed to mark OTP %s used: %v", otp.ID, err)
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("VerifyPostHandler: failed to start session for user %s: %v", user.ID, err)
		http.Redirect(w, r, "/login?status=success&message="+url.QueryEscape("Account verified. Please log in."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if user := helpers.CurrentUser(r); user != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Login"})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Something went wrong processing the form."), http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.userRepo.FindByUsername(r.Context(), username)
	if err != nil {
		log.Printf("LoginPostHandler: lookup for %s failed: %v", username, err)
		h.renderLoginError(w, r, "Something went wrong. Please try again.")
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		h.renderLoginError(w, r, "Invalid login credentials.")
		return
	}

	if !user.IsActive {
		h.renderLoginError(w, r, "Account not verified.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPostHandler: failed to start session for user %s: %v", user.ID, err)
		h.renderLoginError(w, r, "Could not start your session. Please try again.")
		return
	}

	http.Redirect(w, r, "/dashboard?status=success&message="+url.QueryEscape("Successfully logged in."), http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, message string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Login",
		"Message":       message,
		"MessageStatus": "error",
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutHandler: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/login?status=success&message="+url.QueryEscape("You have been logged out."), http.StatusSeeOther)
}
