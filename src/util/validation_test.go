package util

import "testing"

func TestCheckPasswordStrengthValidity(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ng!Pass", true},
		{"Aa1!aaaa", true},
		{"short1!A", true},
		// each missing one base rule: length, upper, lower, digit, special
		{"Sh0rt!a", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"", false},
		// denylist hits lower the score, never validity
		{"Password1!", true},
		{"Qwerty12!aaa", true},
	}
	for _, tc := range cases {
		result := CheckPasswordStrength(tc.password)
		if result.IsValid != tc.valid {
			t.Fatalf("password %q: expected valid=%v, got %v (score %d)", tc.password, tc.valid, result.IsValid, result.Score)
		}
	}
}

func TestCheckPasswordStrengthScore(t *testing.T) {
	cases := []struct {
		password string
		score    int
	}{
		{"", 0},
		// length + lowercase
		{"aaaaaaaa", 2},
		// all five base rules
		{"Aa1!aaaa", 5},
		// bonus would push to 6, capped at 5
		{"Aa1!aaaaaaaa", 5},
		// five base rules minus the denylist penalty
		{"Password1!", 4},
		// five base rules plus bonus, minus penalty
		{"Password1!aa", 5},
		// length + lowercase, minus penalty
		{"password", 1},
	}
	for _, tc := range cases {
		result := CheckPasswordStrength(tc.password)
		if result.Score != tc.score {
			t.Fatalf("password %q: expected score %d, got %d", tc.password, tc.score, result.Score)
		}
	}
}

func TestCheckPasswordStrengthScoreNeverNegative(t *testing.T) {
	// "admin" alone fails every base rule except lowercase; the penalty
	// must floor at zero, not go below it.
	result := CheckPasswordStrength("admin")
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if result.IsValid {
		t.Fatalf("expected invalid")
	}
}

func TestCheckPasswordStrengthRequirementFlags(t *testing.T) {
	result := CheckPasswordStrength("abcdefgh")
	req := result.Requirements
	if !req.Length || !req.Lowercase {
		t.Fatalf("expected length and lowercase to pass: %+v", req)
	}
	if req.Uppercase || req.Numbers || req.SpecialChars {
		t.Fatalf("expected uppercase, numbers, specialChars to fail: %+v", req)
	}
	if len(result.Feedback) != 3 {
		t.Fatalf("expected 3 feedback messages, got %d: %v", len(result.Feedback), result.Feedback)
	}
}

func TestCheckPasswordStrengthDenylistFeedback(t *testing.T) {
	result := CheckPasswordStrength("MyQwerty1!ok")
	found := false
	for _, msg := range result.Feedback {
		if msg == "Password contains common patterns that should be avoided" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected denylist feedback, got %v", result.Feedback)
	}
	if !result.IsValid {
		t.Fatalf("denylist hit must not flip validity")
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"ann@x.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"@nodomain.com", false},
		{"spaces in@mail.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.ok {
			t.Fatalf("email %q: expected %v, got %v", tc.email, tc.ok, got)
		}
	}
}
