package util

import (
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// commonPatterns are known-weak fragments that cost one score point when
// present anywhere in the lowercased password.
var commonPatterns = []string{"password", "123456", "qwerty", "admin"}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

type PasswordRequirements struct {
	Length       bool `json:"length"`
	Uppercase    bool `json:"uppercase"`
	Lowercase    bool `json:"lowercase"`
	Numbers      bool `json:"numbers"`
	SpecialChars bool `json:"specialChars"`
}

type PasswordStrengthResult struct {
	IsValid      bool                 `json:"isValid"`
	Score        int                  `json:"score"`
	Feedback     []string             `json:"feedback"`
	Requirements PasswordRequirements `json:"requirements"`
}

// CheckPasswordStrength scores a candidate password from 0 to 5. Each of the
// five base rules adds a point, length >= 12 adds a bonus point, and a
// common-pattern hit removes one. Validity depends only on the base rules:
// the bonus and the penalty move the reported score, never the decision.
func CheckPasswordStrength(password string) PasswordStrengthResult {
	feedback := []string{}
	score := 0

	req := PasswordRequirements{
		Length:       len(password) >= 8,
		Uppercase:    upperRegex.MatchString(password),
		Lowercase:    lowerRegex.MatchString(password),
		Numbers:      digitRegex.MatchString(password),
		SpecialChars: specialRegex.MatchString(password),
	}

	if req.Length {
		score++
	} else {
		feedback = append(feedback, "Password must be at least 8 characters long")
	}
	if req.Uppercase {
		score++
	} else {
		feedback = append(feedback, "Password must contain at least one uppercase letter")
	}
	if req.Lowercase {
		score++
	} else {
		feedback = append(feedback, "Password must contain at least one lowercase letter")
	}
	if req.Numbers {
		score++
	} else {
		feedback = append(feedback, "Password must contain at least one number")
	}
	if req.SpecialChars {
		score++
	} else {
		feedback = append(feedback, "Password must contain at least one special character (!@#$%^&*()_+-=[]{}|;:,.<>?)")
	}

	if len(password) >= 12 {
		score++
	}

	lowered := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lowered, pattern) {
			feedback = append(feedback, "Password contains common patterns that should be avoided")
			if score > 0 {
				score--
			}
			break
		}
	}

	if score > 5 {
		score = 5
	}

	return PasswordStrengthResult{
		IsValid:      req.Length && req.Uppercase && req.Lowercase && req.Numbers && req.SpecialChars,
		Score:        score,
		Feedback:     feedback,
		Requirements: req,
	}
}
