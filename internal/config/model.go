// internal/config/model.go
//
// Typed configuration model for Vitrine.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `VITRINE_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the rest of the app
// never sees Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  It must contain exactly one
// `%s` verb where the password goes.  The *secret* (`Password`) is
// usually a `vault:` reference resolved at startup.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required,dsn_template"`
	Password string `koanf:"password" validate:"required"`
}

//
// Site section
//

// Site holds the public-facing identity of this deployment.  BaseDomain
// is used to build canonical URLs for rendered pages; APIBaseURL is
// embedded in page scripts so analytics beacons find their way home.
type Site struct {
	BaseDomain string `koanf:"base_domain" validate:"required,fqdn"`
	APIBaseURL string `koanf:"api_base_url" validate:"required,url"`
}

//
// Analytics section
//

// Analytics holds optional enrichment settings.  GeoIPDB points at a
// MaxMind mmdb file; when empty, country attribution is skipped.
type Analytics struct {
	GeoIPDB string `koanf:"geoip_db"`
}

//
// Cache section
//

// Cache tunes the in-process page cache.  PageEntries is the LRU
// capacity; zero disables caching entirely.
type Cache struct {
	PageEntries int `koanf:"page_entries" validate:"gte=0"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or VITRINE_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // VITRINE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Database  Database  `koanf:"database"`
	Site      Site      `koanf:"site"`
	Analytics Analytics `koanf:"analytics"`
	Cache     Cache     `koanf:"cache"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}
