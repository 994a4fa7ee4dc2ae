// Package validation holds the field-level business rule checks used by the
// mutation services. Every check returns a human-readable reason string, or
// the empty string when the value passes. Absent values arrive as nil
// pointers, which keeps "not provided" distinct from "provided but empty".
package validation

import (
	"regexp"
	"strings"
	"time"
)

const lowVowels = "aeiouyаеёиоуыэюя"

var (
	// Conservative RFC-5322-like address: plain or quoted local part,
	// domain or bracketed literal. Matched against the whole value.
	emailRegex = regexp.MustCompile(`^(?:[-!#-'*+/-9=?A-Z^-~]+(?:\.[-!#-'*+/-9=?A-Z^-~]+)*|"(?:[\]!#-\[^-~ \t]|(?:\\[\t -~]))+")@(?:[-!#-'*+/-9=?A-Z^-~]+(?:\.[-!#-'*+/-9=?A-Z^-~]+)*|\[[\t -Z^-~]*\])$`)

	// International phone shape: optional +, grouped digit runs with
	// optional separators.
	phoneRegex = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\(?\d{1,3}?\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)
)

// Collect joins all non-empty reasons with newlines into a single message.
// An empty result means every check passed.
func Collect(reasons ...string) string {
	nonEmpty := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		if reason != "" {
			nonEmpty = append(nonEmpty, reason)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// CheckName validates a human first or last name. The input is case-folded,
// may only contain Latin a-z, Cyrillic а-я and apostrophes, must not mix the
// two alphabets, and must not contain a run of more than two vowels or more
// than two consonants.
func CheckName(name *string) string {
	if name == nil || *name == "" {
		return "No name or wrong type"
	}

	lowered := strings.ToLower(*name)

	for _, r := range lowered {
		if !isLatin(r) && !isCyrillic(r) && r != '\'' {
			return "There are wrong symbols inside"
		}
	}

	if strings.ContainsRune(lowered, ' ') {
		return "There are more than zero spaces"
	}

	var hasLatin, hasCyrillic bool
	for _, r := range lowered {
		hasLatin = hasLatin || isLatin(r)
		hasCyrillic = hasCyrillic || isCyrillic(r)
	}
	if hasLatin && hasCyrillic {
		return "There are ru and en characters inside"
	}

	// One scan; each run counter resets when the character class changes.
	var vowelRun, consonantRun, maxVowelRun, maxConsonantRun int
	for _, r := range lowered {
		switch {
		case strings.ContainsRune(lowVowels, r):
			vowelRun++
			consonantRun = 0
		case r == '\'':
			vowelRun = 0
			consonantRun = 0
		default:
			consonantRun++
			vowelRun = 0
		}
		if vowelRun > maxVowelRun {
			maxVowelRun = vowelRun
		}
		if consonantRun > maxConsonantRun {
			maxConsonantRun = consonantRun
		}
	}
	if maxVowelRun > 2 {
		return "There are more than 2 vowels in a row"
	}
	if maxConsonantRun > 2 {
		return "There are more than 2 consonants in a row"
	}

	return ""
}

// CheckAge validates a human age.
func CheckAge(age *int) string {
	if age == nil {
		return "There isn't age or wrong type"
	}
	if *age < 18 {
		return "Not enough age"
	}
	if *age > 65 {
		return "You are too old"
	}
	return ""
}

// CheckEmail validates an e-mail address.
func CheckEmail(email *string) string {
	if email == nil || *email == "" {
		return "No E-Mail or wrong type"
	}
	if !emailRegex.MatchString(*email) {
		return "Wrong E-Mail."
	}
	return ""
}

// CheckRole validates a user role.
func CheckRole(role *string) string {
	if role == nil || *role == "" {
		return "No role or wrong type"
	}
	if *role != "customer" && *role != "executor" {
		return "Wrong role, select 'customer' or 'performer'"
	}
	return ""
}

// CheckPhone validates a phone number.
func CheckPhone(phone *string) string {
	if phone == nil || *phone == "" {
		return "No phone or wrong type"
	}
	if !phoneRegex.MatchString(*phone) {
		return "Wrong phone."
	}
	return ""
}

// CheckPK validates a primary key reference.
func CheckPK(pk *int64) string {
	if pk == nil {
		return "There isn't pk or wrong type"
	}
	return ""
}

// CheckDescription validates an order description: more than five words.
func CheckDescription(text *string) string {
	if text == nil {
		return "There isn't description or wrong type"
	}
	if len(strings.Fields(*text)) <= 5 {
		return "Description must be more than 5 words"
	}
	return ""
}

// CheckDate validates that a date does not precede the reference date. A zero
// reference means "now".
func CheckDate(theDate *time.Time, other time.Time) string {
	if theDate == nil {
		return "There isn't date or wrong type"
	}
	if other.IsZero() {
		other = time.Now()
	}
	if theDate.Before(other) {
		return "You cannot create an order in the past"
	}
	return ""
}

// CheckAddress validates an address: at least four whitespace tokens, the
// first of which is an all-digit postal code.
func CheckAddress(address *string) string {
	if address == nil {
		return "There isn't address or wrong type"
	}
	tokens := strings.Fields(*address)
	if len(tokens) < 4 {
		return "There is something wrong with your address"
	}
	if !allDigits(tokens[0]) {
		return "The first element of the address can be your post office zip code"
	}
	return ""
}

// CheckPrice validates an order price.
func CheckPrice(price *int) string {
	if price == nil {
		return "There isn't price or wrong type"
	}
	if *price < 100 {
		return "Do it yourself for that kind of money"
	}
	return ""
}

func isLatin(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isCyrillic(r rune) bool {
	return r >= 'а' && r <= 'я'
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
