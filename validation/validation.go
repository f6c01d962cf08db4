// Package validation screens user-supplied text: length bounds, username
// format, spam heuristics and a basic harmful-pattern check.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid is wrapped by every validation failure so callers can map
// the whole family with errors.Is.
var ErrInvalid = errors.New("invalid input")

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	maxBioLength      = 500
	maxAvatarLength   = 200
	minPostContent    = 1
	maxPostContent    = 10000
	minCommentContent = 1
	maxCommentContent = 500
)

var reservedUsernames = map[string]struct{}{
	"admin": {}, "administrator": {}, "mod": {}, "moderator": {},
	"system": {}, "root": {}, "api": {}, "www": {}, "mail": {},
	"email": {}, "support": {}, "help": {}, "info": {}, "news": {},
	"blog": {}, "decentra": {}, "backend": {}, "frontend": {},
	"anonymous": {}, "null": {}, "undefined": {}, "true": {},
	"false": {}, "test": {}, "demo": {},
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Username checks length, character set, special-character placement and
// the reserved-word list.
func Username(username string) error {
	n := len([]rune(username))
	if n < minUsernameLength {
		return invalid("username must be at least %d characters", minUsernameLength)
	}
	if n > maxUsernameLength {
		return invalid("username must be less than %d characters", maxUsernameLength)
	}

	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return invalid("username can only contain letters, numbers, underscores, and hyphens")
		}
	}

	special := func(r byte) bool { return r == '_' || r == '-' }
	if special(username[0]) || special(username[len(username)-1]) {
		return invalid("username cannot start or end with underscore or hyphen")
	}
	prevSpecial := false
	for i := 0; i < len(username); i++ {
		isSpecial := special(username[i])
		if isSpecial && prevSpecial {
			return invalid("username cannot have consecutive special characters")
		}
		prevSpecial = isSpecial
	}

	if _, reserved := reservedUsernames[strings.ToLower(username)]; reserved {
		return invalid("username is reserved and cannot be used")
	}
	return nil
}

// Bio checks the bio length bound and harmful patterns.
func Bio(bio string) error {
	if len([]rune(bio)) > maxBioLength {
		return invalid("bio must be less than %d characters", maxBioLength)
	}
	if containsMaliciousPatterns(bio) {
		return invalid("bio contains potentially harmful content")
	}
	return nil
}

// Avatar accepts a short emoji string or an https URL from a trusted
// image host.
func Avatar(avatar string) error {
	if len([]rune(avatar)) > maxAvatarLength {
		return invalid("avatar must be less than %d characters", maxAvatarLength)
	}
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		if !isValidURL(avatar) {
			return invalid("invalid avatar URL format")
		}
		if !isSafeAvatarURL(avatar) {
			return invalid("avatar URL must be from a trusted domain")
		}
	}
	if containsMaliciousPatterns(avatar) {
		return invalid("avatar contains potentially harmful content")
	}
	return nil
}

// PostContent checks length bounds, spam heuristics and harmful
// patterns.
func PostContent(content string) error {
	if len(strings.TrimSpace(content)) < minPostContent {
		return invalid("post content cannot be empty")
	}
	if len([]rune(content)) > maxPostContent {
		return invalid("post content must be less than %d characters", maxPostContent)
	}
	if isLikelySpam(content) {
		return invalid("post appears to be spam or repetitive content")
	}
	if containsMaliciousPatterns(content) {
		return invalid("post contains potentially harmful content")
	}
	return nil
}

// CommentContent checks comment length bounds, spam heuristics and
// harmful patterns.
func CommentContent(content string) error {
	if len(strings.TrimSpace(content)) < minCommentContent {
		return invalid("comment cannot be empty")
	}
	if len([]rune(content)) > maxCommentContent {
		return invalid("comment must be less than %d characters", maxCommentContent)
	}
	if isLikelySpam(content) {
		return invalid("comment appears to be spam or repetitive content")
	}
	if containsMaliciousPatterns(content) {
		return invalid("comment contains potentially harmful content")
	}
	return nil
}

var maliciousPatterns = []string{
	"<script", "</script>", "javascript:", "onclick=", "onerror=",
	"onload=", "eval(", "alert(", "document.cookie", "window.location",
	"iframe", "union select", "drop table", "delete from",
	"insert into", "'; --", "\"; --",
}

func containsMaliciousPatterns(content string) bool {
	lower := strings.ToLower(content)
	for _, p := range maliciousPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isValidURL(url string) bool {
	return strings.HasPrefix(url, "https://") &&
		len(url) > 10 &&
		strings.Contains(url, ".") &&
		!strings.ContainsAny(url, " \n\r")
}

var safeAvatarDomains = []string{
	"imgur.com", "githubusercontent.com", "github.com", "gravatar.com",
	"cloudinary.com", "unsplash.com", "pexels.com",
}

func isSafeAvatarURL(url string) bool {
	for _, domain := range safeAvatarDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

func isLikelySpam(content string) bool {
	return hasExcessiveRepetition(content) ||
		hasExcessiveCaps(content) ||
		hasExcessiveSpecialChars(content)
}

// hasExcessiveRepetition flags more than 10 consecutive identical runes.
func hasExcessiveRepetition(content string) bool {
	var prev rune
	count := 0
	for _, r := range content {
		if r == prev {
			count++
			if count > 10 {
				return true
			}
		} else {
			count = 1
		}
		prev = r
	}
	return false
}

// hasExcessiveCaps flags content where over 70% of letters are uppercase.
func hasExcessiveCaps(content string) bool {
	if len([]rune(content)) < 10 {
		return false
	}
	letters, caps := 0, 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				caps++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(caps)/float64(letters) > 0.7
}

// hasExcessiveSpecialChars flags content that is over half punctuation.
func hasExcessiveSpecialChars(content string) bool {
	total := len([]rune(content))
	if total == 0 {
		return false
	}
	special := 0
	for _, r := range content {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	return float64(special)/float64(total) > 0.5
}
