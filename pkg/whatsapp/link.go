// Package whatsapp builds wa.me deep links from stored phone numbers.
package whatsapp

import "strings"

const baseURL = "https://wa.me/"

// Link normalizes phone (spaces and "+" stripped) and returns the wa.me
// deep link. Returns "" when the number is empty after normalization, so
// callers can leave the derived field unset instead of storing a bad link.
func Link(phone string) string {
	n := Normalize(phone)
	if n == "" {
		return ""
	}
	return baseURL + n
}

// Normalize strips spaces and plus signs: "+253 77 12 34 56" -> "25377123456".
func Normalize(phone string) string {
	n := strings.ReplaceAll(phone, " ", "")
	n = strings.ReplaceAll(n, "+", "")
	return n
}
