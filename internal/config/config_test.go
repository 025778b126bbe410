package config

import "testing"

func validLocal() Config {
	return Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "sautiai", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
		Upstream: UpstreamConfig{
			BaseURL:       "http://localhost:9000",
			PlaygroundURL: "ws://localhost:9001/playground",
		},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "sautiai"
	c.Auth.JWTAudience = "dashboard"
	c.Upstream.WebhookSecret = "whsec"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validLocal()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Campaign.LiveTranscriptPoll.Seconds() != 2 {
		t.Fatalf("expected 2s live transcript poll default, got %v", c.Campaign.LiveTranscriptPoll)
	}
	if c.Upstream.RequestTimeout <= 0 {
		t.Fatalf("expected upstream timeout default")
	}
}

func TestValidate_RejectsNonHTTPUpstream(t *testing.T) {
	c := validLocal()
	c.Upstream.BaseURL = "localhost:9000"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for non-http upstream base url")
	}
}
