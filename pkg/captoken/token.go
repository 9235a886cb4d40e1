package captoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// SignatureSize is the byte length of a decoded token signature.
const SignatureSize = sha256.Size

// Token is the decoded wire form "<issuedAt>:<hex-signature>". The resource
// and actor it was issued for are deliberately absent: the verifying side
// supplies them and folds them back into the MAC.
type Token struct {
	IssuedAt  int64
	Signature []byte
}

// String encodes the token in its wire form.
func (t Token) String() string {
	return strconv.FormatInt(t.IssuedAt, 10) + ":" + hex.EncodeToString(t.Signature)
}

// Payload is the byte string the MAC covers.
func Payload(resourceID int64, actorID string, issuedAt int64) []byte {
	b := make([]byte, 0, 48+len(actorID))
	b = strconv.AppendInt(b, resourceID, 10)
	b = append(b, ':')
	b = append(b, actorID...)
	b = append(b, ':')
	b = strconv.AppendInt(b, issuedAt, 10)
	return b
}

// Sign computes HMAC-SHA-256 of the payload for (resourceID, actorID,
// issuedAt) under secret.
func Sign(resourceID int64, actorID string, issuedAt int64, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(Payload(resourceID, actorID, issuedAt))
	return mac.Sum(nil)
}

// Equal compares a and b in time that depends only on their length. Length
// is checked up front so a mismatch never reaches the byte comparator.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Parse decodes a wire token. It performs the structural checks only
// (missing, malformed, signature encoding); it knows nothing about time or
// keys.
func Parse(raw string) (Token, error) {
	if raw == "" {
		return Token{}, ErrMissingToken
	}

	issued, sig, err := split(raw)
	if err != nil {
		return Token{}, err
	}

	decoded, err := decodeSignature(sig)
	if err != nil {
		return Token{}, err
	}

	return Token{IssuedAt: issued, Signature: decoded}, nil
}

// split checks the "<digits>:<non-empty>" shape and parses the timestamp.
func split(raw string) (int64, string, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, "", ErrMalformed
	}

	// ParseUint rejects signs; bitSize 63 keeps the value inside int64.
	issued, err := strconv.ParseUint(parts[0], 10, 63)
	if err != nil {
		return 0, "", ErrMalformed
	}
	if parts[1] == "" {
		return 0, "", ErrMalformed
	}

	return int64(issued), parts[1], nil
}

func decodeSignature(sig string) ([]byte, error) {
	if len(sig) != hex.EncodedLen(SignatureSize) {
		return nil, ErrBadSignatureEncoding
	}
	decoded, err := hex.DecodeString(sig)
	if err != nil {
		return nil, ErrBadSignatureEncoding
	}
	return decoded, nil
}
