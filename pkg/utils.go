package pkg

import "math/rand"

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandString produces a short join code. The alphabet drops the characters
// players misread over voice chat.
func RandString(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(out)
}
