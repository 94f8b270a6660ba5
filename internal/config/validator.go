// internal/config/validator.go
//
// Config validation rules.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` right after the
// merged Koanf tree unmarshals into Config, so the binary never runs
// with partial or malformed configuration.
//
// Besides the built-in `required`, `hostname_port`, `fqdn`, `url`, and
// `gte` rules, one custom rule is registered:
//
//	dsn_template – the database DSN must contain exactly one %s verb,
//	               the slot the resolved password expands into.  A DSN
//	               with zero slots silently ships the literal "%s" to
//	               the server; more than one garbles the expansion.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Registration only fails for empty tag names; safe to ignore here.
	_ = val.RegisterValidation("dsn_template", dsnTemplate)
	return val
}

// dsnTemplate enforces exactly one %s password slot.
func dsnTemplate(fl validator.FieldLevel) bool {
	return strings.Count(fl.Field().String(), "%s") == 1
}

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
