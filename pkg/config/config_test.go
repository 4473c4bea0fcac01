package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.App.Name != "ticket-booking" {
		t.Errorf("App.Name = %s, want ticket-booking", cfg.App.Name)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("Server.Port = %d, want 3001", cfg.Server.Port)
	}
	if cfg.Database.DBName != "ticket_booking" {
		t.Errorf("Database.DBName = %s, want ticket_booking", cfg.Database.DBName)
	}
	if cfg.Booking.SweepInterval != time.Minute {
		t.Errorf("Booking.SweepInterval = %s, want 1m", cfg.Booking.SweepInterval)
	}
	if cfg.Booking.GraceWindow != 2*time.Minute {
		t.Errorf("Booking.GraceWindow = %s, want 2m", cfg.Booking.GraceWindow)
	}
	if cfg.Booking.MaxSeatsPerRequest != 10 {
		t.Errorf("Booking.MaxSeatsPerRequest = %d, want 10", cfg.Booking.MaxSeatsPerRequest)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false by default")
	}
	if cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled = true, want false by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("BOOKING_SWEEP_INTERVAL", "30s")
	t.Setenv("BOOKING_GRACE_WINDOW", "5m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Booking.SweepInterval != 30*time.Second {
		t.Errorf("Booking.SweepInterval = %s, want 30s", cfg.Booking.SweepInterval)
	}
	if cfg.Booking.GraceWindow != 5*time.Minute {
		t.Errorf("Booking.GraceWindow = %s, want 5m", cfg.Booking.GraceWindow)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker2:9092" {
		t.Errorf("Kafka.Brokers = %v, want two brokers", cfg.Kafka.Brokers)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:    AppConfig{Name: "ticket-booking"},
			Server: ServerConfig{Port: 3001},
			Database: DatabaseConfig{
				Host:   "localhost",
				DBName: "ticket_booking",
			},
			Booking: BookingConfig{
				SweepInterval:      time.Minute,
				GraceWindow:        2 * time.Minute,
				MaxSeatsPerRequest: 10,
			},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }},
		{"missing database host", func(c *Config) { c.Database.Host = "" }},
		{"missing database name", func(c *Config) { c.Database.DBName = "" }},
		{"zero sweep interval", func(c *Config) { c.Booking.SweepInterval = 0 }},
		{"zero grace window", func(c *Config) { c.Booking.GraceWindow = 0 }},
		{"zero max seats", func(c *Config) { c.Booking.MaxSeatsPerRequest = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected an error")
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production environment")
	}

	cfg.App.Environment = "development"
	if cfg.IsProduction() || !cfg.IsDevelopment() {
		t.Error("expected development environment")
	}
}
