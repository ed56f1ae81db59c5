package helper

import (
	"crypto/rand"
	"strings"
)

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString menghasilkan string acak uppercase alfanumerik sepanjang n.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand praktis tidak pernah gagal; fallback deterministik aman
		return strings.Repeat("X", n)
	}
	for i, b := range buf {
		buf[i] = idCharset[int(b)%len(idCharset)]
	}
	return string(buf)
}

// NewMaterialID: "MTR" + 8 karakter acak uppercase. Kunci materi di katalog.
func NewMaterialID() string {
	return "MTR" + RandomString(8)
}
