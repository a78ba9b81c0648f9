package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
)

// MinTokenLength is the smallest label token considered significant when
// scoring matches; shorter tokens (articles, bank codes) are noise.
const MinTokenLength = 3

// SanitizeString trims whitespace from string
func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

// NormalizeEmail converts email to lowercase and trims spaces
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeLabel uppercases a free-text label and strips everything that is
// not a letter or digit, so "FAC-2024/018" and "FAC 2024 018" compare equal
func NormalizeLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TokenizeLabel splits a label on whitespace and keeps the tokens longer than
// MinTokenLength, uppercased, deduplicated
func TokenizeLabel(label string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, field := range strings.Fields(strings.ToUpper(label)) {
		if len(field) <= MinTokenLength {
			continue
		}
		if !seen[field] {
			seen[field] = true
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// SharedTokenCount counts how many tokens of a are also present in b's label
func SharedTokenCount(a []string, bLabel string) int {
	bTokens := make(map[string]bool)
	for _, tok := range TokenizeLabel(bLabel) {
		bTokens[tok] = true
	}
	count := 0
	for _, tok := range a {
		if bTokens[tok] {
			count++
		}
	}
	return count
}

// TruncateLabel cuts a label to at most n bytes after trimming, used as the
// grouping key for duplicate detection
func TruncateLabel(label string, n int) string {
	label = strings.TrimSpace(label)
	if len(label) > n {
		return label[:n]
	}
	return label
}

// GenerateReference generates a unique reference string
func GenerateReference() string {
	timestamp := time.Now().Unix()
	randomPart := generateRandomString(6)
	return fmt.Sprintf("REF-%d-%s", timestamp, randomPart)
}

// Helper function to generate random string
func generateRandomString(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)

	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
