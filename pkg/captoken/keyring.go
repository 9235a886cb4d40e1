package captoken

import "log/slog"

const redacted = "[REDACTED]"

// Secret is HMAC key material. It formats and logs as a placeholder so it
// can't leak through fmt or slog by accident.
type Secret []byte

func (s Secret) String() string { return redacted }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redacted) }

// Keyring holds the active signing secret and, during a rotation window, the
// previous one. Tokens are always issued under the active secret; verifiers
// accept either. A Keyring is never mutated after construction, so one value
// can be shared by any number of goroutines.
type Keyring struct {
	active   Secret
	previous Secret
}

// NewKeyring builds a keyring from raw secrets. The active secret is
// required; previous may be empty. Both are copied.
func NewKeyring(active, previous []byte) (*Keyring, error) {
	if len(active) == 0 {
		return nil, ErrMissingSecret
	}

	k := &Keyring{active: clone(active)}
	if len(previous) > 0 {
		k.previous = clone(previous)
	}
	return k, nil
}

// Active returns the secret new tokens are signed with.
func (k *Keyring) Active() Secret { return k.active }

// Rotating reports whether a previous secret is still accepted.
func (k *Keyring) Rotating() bool { return len(k.previous) > 0 }

// verifying returns the secrets a token may be signed under, active first.
func (k *Keyring) verifying() []Secret {
	if k.Rotating() {
		return []Secret{k.active, k.previous}
	}
	return []Secret{k.active}
}

func clone(b []byte) Secret {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
