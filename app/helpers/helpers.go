package helpers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/graple254/bazaa/app/models"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	ContextKeyStore  contextKey = "subdomainStore"
)

// CurrentUser returns the authenticated user attached by the auth
// middleware, or nil.
func CurrentUser(r *http.Request) *models.User {
	if user, ok := r.Context().Value(ContextKeyUser).(*models.User); ok {
		return user
	}
	return nil
}

// CurrentStore returns the tenant resolved from the request host, or nil
// when the host maps to no store.
func CurrentStore(r *http.Request) *models.Store {
	if store, ok := r.Context().Value(ContextKeyStore).(*models.Store); ok {
		return store
	}
	return nil
}

// GenerateVerificationCode returns a 6-digit signup verification code.
func GenerateVerificationCode() string {
	return fmt.Sprintf("%d", rand.Intn(900000)+100000)
}

// ClientIP prefers the first X-Forwarded-For hop so likes survive a
// reverse proxy, falling back to the socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[:i]
	}
	return addr
}

func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "Bazaa Digital"
	}
	if _, exists := pageSpecificData["IsLoggedIn"]; !exists {
		pageSpecificData["IsLoggedIn"] = false
	}
	if _, exists := pageSpecificData["User"]; !exists {
		pageSpecificData["User"] = nil
	}
	if _, exists := pageSpecificData["Query"]; !exists {
		pageSpecificData["Query"] = r.URL.Query()
	}

	if user := CurrentUser(r); user != nil {
		pageSpecificData["User"] = user
		pageSpecificData["IsLoggedIn"] = true
	}

	if store := CurrentStore(r); store != nil {
		pageSpecificData["SubdomainStore"] = store
	}

	pageSpecificData["CSRFField"] = csrf.TemplateField(r)

	if status := r.URL.Query().Get("status"); status != "" {
		pageSpecificData["MessageStatus"] = status
	} else {
		pageSpecificData["MessageStatus"] = ""
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		pageSpecificData["Message"] = msg
	} else {
		pageSpecificData["Message"] = ""
	}

	return pageSpecificData
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", err.Field(), err.Param())
		case "hostname_rfc1123":
			errorMessages[field] = fmt.Sprintf("%s may only contain letters, digits and hyphens.", err.Field())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}
