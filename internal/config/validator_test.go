// internal/config/validator_test.go
//
// Unit-tests for the config validation rules.
//
// Run: go test ./internal/config -v

package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTP{ListenAddr: ":8080"},
		Database: Database{
			DSN:      "vitrine:%s@tcp(127.0.0.1:3306)/vitrine?parseTime=true",
			Password: "secret",
		},
		Site: Site{
			BaseDomain: "example.com",
			APIBaseURL: "https://api.example.com",
		},
		Cache: Cache{PageEntries: 512},
	}
}

func TestValidConfigPasses(t *testing.T) {
	cfg := validConfig()
	if err := validateStruct(&cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestDSNTemplateRequiresOnePasswordSlot(t *testing.T) {
	cases := []struct {
		dsn string
		ok  bool
	}{
		{"vitrine:%s@tcp(db:3306)/vitrine", true},
		{"vitrine:plaintext@tcp(db:3306)/vitrine", false}, // no slot
		{"%s:%s@tcp(db:3306)/vitrine", false},             // two slots
	}
	for _, c := range cases {
		cfg := validConfig()
		cfg.Database.DSN = c.dsn
		err := validateStruct(&cfg)
		if c.ok && err != nil {
			t.Errorf("dsn %q rejected: %v", c.dsn, err)
		}
		if !c.ok && err == nil {
			t.Errorf("dsn %q should fail the %%s-slot rule", c.dsn)
		}
	}
}

func TestRequiredFieldsFailFast(t *testing.T) {
	cfg := validConfig()
	cfg.Site.BaseDomain = ""
	if err := validateStruct(&cfg); err == nil {
		t.Fatal("missing base_domain must abort startup")
	}

	cfg = validConfig()
	cfg.Cache.PageEntries = -1
	if err := validateStruct(&cfg); err == nil {
		t.Fatal("negative cache capacity must be rejected")
	}
}
