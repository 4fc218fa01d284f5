package security

import "strings"

// Character classes shared by the password generator and validator. Keeping a
// single definition guarantees that every password the generator emits is
// accepted by the validator.
const (
	alphabetLetters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphabetDigits      = "0123456789"
	alphabetPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

const passwordAlphabet = alphabetLetters + alphabetDigits + alphabetPunctuation

func containsDigit(s string) bool {
	return strings.ContainsAny(s, alphabetDigits)
}

func containsPunctuation(s string) bool {
	return strings.ContainsAny(s, alphabetPunctuation)
}
