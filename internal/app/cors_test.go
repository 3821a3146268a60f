package app

import (
	"testing"

	"github.com/terravista/estate-core/internal/config"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"terravista.in", "*.terravista.in", "Admin.Example.COM"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://terravista.in", true},
		{"https://terravista.in:8443", true},
		{"https://www.terravista.in", true},
		{"https://cdn.assets.terravista.in", true},
		{"http://admin.example.com", true},
		{"https://ADMIN.EXAMPLE.com", true},
		{"https://evil.com", false},
		{"https://terravista.in.evil.com", false},
		{"https://notterravista.in", false},
		{"not a url", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := originAllowed(patterns, tc.origin); got != tc.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestCorsConfigDevAllowsAnyOrigin(t *testing.T) {
	cfg := &config.AppConfig{Env: "development", AllowedOrigins: []string{"terravista.in"}}
	c := corsConfig(cfg)
	if !c.AllowOriginFunc("https://anything.example") {
		t.Error("development mode should allow any origin")
	}
}

func TestCorsConfigProductionRestrictsOrigins(t *testing.T) {
	cfg := &config.AppConfig{Env: "production", AllowedOrigins: []string{"terravista.in"}}
	c := corsConfig(cfg)
	if !c.AllowOriginFunc("https://terravista.in") {
		t.Error("configured origin rejected")
	}
	if c.AllowOriginFunc("https://evil.com") {
		t.Error("unlisted origin allowed in production")
	}
}
