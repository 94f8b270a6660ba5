// internal/vault/vault.go
//
// HashiCorp Vault access for Vitrine.
//
// Context
// -------
// Vitrine keeps exactly one class of secret out of flat files: values the
// config loader finds under a `vault:path#key` reference (today that is
// the database password).  This package wraps the official Vault Go SDK
// with the three things the loader needs and nothing more:
//
//   - KV-v2 reads addressed as `mount/relative/path` plus a field name,
//   - a small TTL cache so a config reload does not hammer Vault,
//   - background renewal of the login token for long-lived processes.
//
// Usage
// -----
//
//	cli, err := vault.New(ctx, zap.S().Infof)        // once, at boot
//	pw,  err := cli.GetKV(ctx, path, field, ttl)     // per reference
//
// VAULT_ADDR and VAULT_TOKEN come from the environment, exactly as the
// `vault` CLI reads them.  VAULT_TOKEN falls back to ~/.vault-token.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Renewal and retry tunables.  A token that cannot be renewed is checked
// again after nonRenewableWait in case it gets swapped underneath us.
const (
	renewGrace       = 15 * time.Second
	renewRetryWait   = 30 * time.Second
	renewRestartWait = 15 * time.Second
	nonRenewableWait = time.Hour
)

// Client reads KV-v2 secrets and keeps its token alive.  Safe for
// concurrent use; the zero value is not usable, call New.
type Client struct {
	api  *vault.Client
	logf func(string, ...any)

	mu      sync.RWMutex
	entries map[string]entry // "path#field" -> cached value
}

// entry is one cached secret value with its expiry.
type entry struct {
	value   string
	expires time.Time
}

// New builds a Client from the VAULT_* environment and starts the token
// renewal loop, which runs until ctx is cancelled.  logf may be nil.
func New(ctx context.Context, logf func(string, ...any)) (*Client, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault environment: %w", err)
	}

	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		api.SetToken(tok)
	}

	c := &Client{
		api:     api,
		logf:    logf,
		entries: make(map[string]entry),
	}
	go c.keepTokenAlive(ctx)

	return c, nil
}

// GetKV returns one field of a KV-v2 secret.  secretPath is
// "mount/relative/path" as shown by `vault kv get`.  A ttl above zero
// caches the value for that long; callers inside the window get the
// cached copy without a round trip.
func (c *Client) GetKV(ctx context.Context, secretPath, field string, ttl time.Duration) (string, error) {
	if secretPath == "" || field == "" {
		return "", errors.New("vault: secret path and field are required")
	}

	ref := secretPath + "#" + field
	if ttl > 0 {
		if v, ok := c.lookup(ref); ok {
			return v, nil
		}
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[field]
	if !ok {
		return "", fmt.Errorf("vault: secret %q has no field %q", secretPath, field)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: %s#%s is %T, want string", secretPath, field, raw)
	}

	if ttl > 0 {
		c.store(ref, value, ttl)
	}
	return value, nil
}

func (c *Client) lookup(ref string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[ref]
	if !ok || time.Now().After(e.expires) {
		return "", false
	}
	return e.value, true
}

func (c *Client) store(ref, value string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[ref] = entry{value: value, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// keepTokenAlive renews the login token for as long as ctx lives.  Each
// pass renews once to learn the current lease, hands the lease to the
// SDK renewer, and restarts the cycle when that renewer gives up.
func (c *Client) keepTokenAlive(ctx context.Context) {
	for ctx.Err() == nil {
		lease, err := c.api.Auth().Token().RenewSelf(0)
		if err != nil {
			c.logf("vault: token self-renew failed: %v", err)
			sleep(ctx, renewRetryWait)
			continue
		}
		if lease == nil || !lease.Auth.Renewable {
			c.logf("vault: token not renewable, checking again in %s", nonRenewableWait)
			sleep(ctx, nonRenewableWait)
			continue
		}

		renewer, err := c.api.NewRenewer(&vault.RenewerInput{
			Secret: lease,
			Grace:  renewGrace,
		})
		if err != nil {
			c.logf("vault: renewer setup failed: %v", err)
			sleep(ctx, renewRetryWait)
			continue
		}
		go renewer.Renew()

		c.watch(ctx, renewer)
		sleep(ctx, renewRestartWait)
	}
}

// watch drains one renewer until it stops or ctx is cancelled.
func (c *Client) watch(ctx context.Context, renewer *vault.Renewer) {
	defer renewer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-renewer.DoneCh():
			if err != nil {
				c.logf("vault: token renewal stopped: %v", err)
			}
			return
		case ev := <-renewer.RenewCh():
			if ev != nil && ev.Secret != nil && ev.Secret.Auth != nil {
				c.logf("vault: token renewed, ttl=%ds", ev.Secret.Auth.LeaseDuration)
			}
		}
	}
}

// splitMount separates the KV mount from the path below it.  The SDK
// wants the two halves separately; operators write them as one path.
func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return mount, rel
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
