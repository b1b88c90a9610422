// Package encryption is the server-side contract point for note content.
//
// Notes arrive already encrypted by the client (AES-GCM, base64) and are
// stored verbatim, so both functions are pass-throughs. They exist so every
// read and write of note content goes through one place once a server-side
// cipher contract lands.
package encryption

// EncryptContent prepares content for storage.
func EncryptContent(content string) string {
	return content
}

// DecryptContent prepares stored content for the API response.
func DecryptContent(stored string) string {
	return stored
}
