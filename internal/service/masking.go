package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maskEmail keeps the first and last character of the local part so log lines stay
// traceable without storing the full address.
func maskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return "***"
	}
	if len(local) <= 2 {
		local = local[:1] + "***"
	} else {
		local = local[:1] + "***" + local[len(local)-1:]
	}
	return local + "@" + domain
}

// plainText strips markup with the policy and stores the result as literal text,
// so apostrophes and ampersands survive instead of becoming HTML entities.
func plainText(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(value)))
}
