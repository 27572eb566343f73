// Package password scores candidate passwords against the signup policy.
package password

import "strings"

const specialChars = `!@#$%^&*(),.?":{}|<>`

// Result is the outcome of evaluating one candidate password.
type Result struct {
	Valid   bool   `json:"valid"`
	Score   int    `json:"score"`
	Message string `json:"message,omitempty"`
}

type requirement struct {
	met     func(string) bool
	message string
}

// Requirements are checked in a fixed order; Message reports only the first
// unmet one, so clients see a single actionable hint at a time.
var requirements = []requirement{
	{
		met:     func(p string) bool { return len(p) >= 8 },
		message: "Password must be at least 8 characters long",
	},
	{
		met:     func(p string) bool { return strings.IndexFunc(p, isUpper) >= 0 },
		message: "Password must contain at least one uppercase letter",
	},
	{
		met:     func(p string) bool { return strings.IndexFunc(p, isLower) >= 0 },
		message: "Password must contain at least one lowercase letter",
	},
	{
		met:     func(p string) bool { return strings.IndexFunc(p, isDigit) >= 0 },
		message: "Password must contain at least one number",
	},
	{
		met:     func(p string) bool { return strings.ContainsAny(p, specialChars) },
		message: `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`,
	},
}

// Evaluate scores password against the five policy requirements. Each
// satisfied requirement is worth an equal share of 100.
func Evaluate(password string) Result {
	score := 0
	message := ""
	for _, req := range requirements {
		if req.met(password) {
			score += 100 / len(requirements)
			continue
		}
		if message == "" {
			message = req.message
		}
	}
	return Result{
		Valid:   message == "",
		Score:   score,
		Message: message,
	}
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
