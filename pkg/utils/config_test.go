package utils

import (
	"slices"
	"testing"
)

func validConfig() *Config {
	return &Config{
		JWT:        JWTConfig{Secret: "s3cret", ExpiryHours: 1},
		Cache:      CacheConfig{Driver: CacheDriverMemory, TTLSeconds: 60},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"redis driver", func(c *Config) { c.Cache.Driver = CacheDriverRedis }, false},
		{"missing secret", func(c *Config) { c.JWT.Secret = " " }, true},
		{"zero expiry", func(c *Config) { c.JWT.ExpiryHours = 0 }, true},
		{"unknown driver", func(c *Config) { c.Cache.Driver = "memcached" }, true},
		{"zero cache ttl", func(c *Config) { c.Cache.TTLSeconds = 0 }, true},
		{"zero default limit", func(c *Config) { c.Pagination.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.Pagination.MaxLimit = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "5")
	t.Setenv("CACHE_DRIVER", "MEMORY")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.JWT.Secret != "from-env" {
		t.Errorf("secret: got %q", config.JWT.Secret)
	}
	if config.Pagination.DefaultLimit != 5 || config.Pagination.MaxLimit != 100 {
		t.Errorf("pagination: got %+v", config.Pagination)
	}
	if config.Cache.Driver != CacheDriverMemory {
		t.Errorf("driver: got %q", config.Cache.Driver)
	}
	if config.App.Port != "8080" {
		t.Errorf("port: got %q", config.App.Port)
	}
}

func TestParseCSV(t *testing.T) {
	if got := ParseCSV(" https://a.test , ,https://b.test"); !slices.Equal(got, []string{"https://a.test", "https://b.test"}) {
		t.Errorf("got %v", got)
	}
	if got := ParseCSV(""); !slices.Equal(got, []string{"*"}) {
		t.Errorf("expected wildcard, got %v", got)
	}
}
