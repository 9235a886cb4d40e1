package domain

// MFAEnrollment is returned when a user starts TOTP enrolment. The secret is
// pending until a code generated from it is confirmed.
type MFAEnrollment struct {
	Secret  string // base32
	URL     string // otpauth:// for QR codes
	Issuer  string
	Account string
}
