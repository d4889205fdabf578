package helpers

import (
	"net/http/httptest"
	"regexp"
	"testing"
)

func TestGenerateVerificationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 50; i++ {
		code := GenerateVerificationCode()
		if !pattern.MatchString(code) {
			t.Fatalf("code %q is not a 6-digit number", code)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"socket address", "203.0.113.5:54321", "", "203.0.113.5"},
		{"forwarded single hop", "10.0.0.1:80", "198.51.100.7", "198.51.100.7"},
		{"forwarded chain takes first hop", "10.0.0.1:80", "198.51.100.7, 10.0.0.2", "198.51.100.7"},
		{"forwarded with spaces", "10.0.0.1:80", "  198.51.100.7 , 10.0.0.2", "198.51.100.7"},
		{"address without port", "203.0.113.5", "", "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
