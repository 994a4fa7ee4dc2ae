package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grmlab/services-exchange/internal/validation"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func pkPtr(i int64) *int64    { return &i }

func TestCheckName(t *testing.T) {
	tests := []struct {
		name   string
		input  *string
		reason string
	}{
		{"valid latin", strPtr("Mary"), ""},
		{"valid with apostrophe", strPtr("O'Neil"), ""},
		{"valid cyrillic", strPtr("Вера"), ""},
		{"missing", nil, "No name or wrong type"},
		{"empty", strPtr(""), "No name or wrong type"},
		{"digit inside", strPtr("Mar1a"), "There are wrong symbols inside"},
		{"symbol inside", strPtr("Mar!a"), "There are wrong symbols inside"},
		{"space counts as wrong symbol", strPtr("Mary Ann"), "There are wrong symbols inside"},
		{"mixed alphabets", strPtr("Maryа"), "There are ru and en characters inside"},
		{"three vowels in a row", strPtr("Aaa"), "There are more than 2 vowels in a row"},
		{"three consonants in a row", strPtr("Mstislav"), "There are more than 2 consonants in a row"},
		{"apostrophe breaks consonant run", strPtr("An'dr"), ""},
		{"case folded", strPtr("MARY"), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reason, validation.CheckName(tc.input))
		})
	}
}

func TestCheckAge(t *testing.T) {
	assert.Equal(t, "There isn't age or wrong type", validation.CheckAge(nil))
	assert.Equal(t, "Not enough age", validation.CheckAge(intPtr(17)))
	assert.Equal(t, "You are too old", validation.CheckAge(intPtr(66)))
	assert.Equal(t, "", validation.CheckAge(intPtr(18)))
	assert.Equal(t, "", validation.CheckAge(intPtr(30)))
	assert.Equal(t, "", validation.CheckAge(intPtr(65)))
}

func TestCheckEmail(t *testing.T) {
	assert.Equal(t, "No E-Mail or wrong type", validation.CheckEmail(nil))
	assert.Equal(t, "No E-Mail or wrong type", validation.CheckEmail(strPtr("")))
	assert.Equal(t, "", validation.CheckEmail(strPtr("user@example.com")))
	assert.Equal(t, "", validation.CheckEmail(strPtr("first.last@sub.example.org")))
	assert.Equal(t, "Wrong E-Mail.", validation.CheckEmail(strPtr("not-an-email")))
	assert.Equal(t, "Wrong E-Mail.", validation.CheckEmail(strPtr("user@")))
	assert.Equal(t, "Wrong E-Mail.", validation.CheckEmail(strPtr("@example.com")))
}

func TestCheckRole(t *testing.T) {
	assert.Equal(t, "No role or wrong type", validation.CheckRole(nil))
	assert.Equal(t, "", validation.CheckRole(strPtr("customer")))
	assert.Equal(t, "", validation.CheckRole(strPtr("executor")))
	assert.Equal(t, "Wrong role, select 'customer' or 'performer'", validation.CheckRole(strPtr("admin")))
}

func TestCheckPhone(t *testing.T) {
	assert.Equal(t, "No phone or wrong type", validation.CheckPhone(nil))
	assert.Equal(t, "", validation.CheckPhone(strPtr("+79211234567")))
	assert.Equal(t, "", validation.CheckPhone(strPtr("123-456-7890")))
	assert.Equal(t, "Wrong phone.", validation.CheckPhone(strPtr("phone")))
	assert.Equal(t, "Wrong phone.", validation.CheckPhone(strPtr("++123")))
}

func TestCheckPK(t *testing.T) {
	assert.Equal(t, "There isn't pk or wrong type", validation.CheckPK(nil))
	assert.Equal(t, "", validation.CheckPK(pkPtr(1)))
}

func TestCheckDescription(t *testing.T) {
	assert.Equal(t, "There isn't description or wrong type", validation.CheckDescription(nil))
	assert.Equal(t, "Description must be more than 5 words",
		validation.CheckDescription(strPtr("one two three four five")))
	assert.Equal(t, "", validation.CheckDescription(strPtr("one two three four five six")))
}

func TestCheckDate(t *testing.T) {
	ref := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := ref.AddDate(0, 0, -1)
	future := ref.AddDate(0, 0, 1)

	assert.Equal(t, "There isn't date or wrong type", validation.CheckDate(nil, ref))
	assert.Equal(t, "You cannot create an order in the past", validation.CheckDate(&past, ref))
	assert.Equal(t, "", validation.CheckDate(&future, ref))

	// Zero reference means "now".
	longAgo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "You cannot create an order in the past", validation.CheckDate(&longAgo, time.Time{}))
}

func TestCheckAddress(t *testing.T) {
	assert.Equal(t, "There isn't address or wrong type", validation.CheckAddress(nil))
	assert.Equal(t, "", validation.CheckAddress(strPtr("123 Main St Apt")))
	assert.Equal(t, "The first element of the address can be your post office zip code",
		validation.CheckAddress(strPtr("Main St Apt 4")))
	assert.Equal(t, "There is something wrong with your address",
		validation.CheckAddress(strPtr("123 Main St")))
}

func TestCheckPrice(t *testing.T) {
	assert.Equal(t, "There isn't price or wrong type", validation.CheckPrice(nil))
	assert.Equal(t, "Do it yourself for that kind of money", validation.CheckPrice(intPtr(99)))
	assert.Equal(t, "", validation.CheckPrice(intPtr(100)))
}

func TestCollect(t *testing.T) {
	assert.Equal(t, "", validation.Collect())
	assert.Equal(t, "", validation.Collect("", "", ""))
	assert.Equal(t, "first", validation.Collect("", "first", ""))
	assert.Equal(t, "first\nsecond", validation.Collect("first", "", "second"))
}
