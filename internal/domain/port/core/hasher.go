package core

// PasswordHasher is the credential-verification primitive the auth core
// consumes. The hashing algorithm itself is outside the domain; the port only
// promises hash(secret) -> digest and verify(secret, digest) -> bool.
type PasswordHasher interface {
	// Hash derives a storable digest from a plaintext secret
	Hash(secret string) (string, error)
	// Verify reports whether the secret matches the stored digest
	Verify(secret, digest string) bool
}
