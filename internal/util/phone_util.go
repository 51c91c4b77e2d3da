package util

import (
	"regexp"
	"strings"
)

const maxPlainPhoneDigits = 10

// 保加利亞行動電話格式
var mobilePhonePattern = regexp.MustCompile(`^(?:\+3598[7-9]\d{7}|08[7-9]\d{7})$`)

// NormalizePhoneNumber 去除前後空白
func NormalizePhoneNumber(number string) string {
	return strings.TrimSpace(number)
}

// IsValidPhoneNumber 1~10 位純數字, 或符合行動電話格式
func IsValidPhoneNumber(number string) bool {
	if mobilePhonePattern.MatchString(number) {
		return true
	}
	if number == "" || len(number) > maxPlainPhoneDigits {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
