package validation

import "testing"

func TestValidateUsername_SQLInjection(t *testing.T) {
	inputs := []string{
		"'; DROP TABLE Users; --",
		"' OR '1'='1",
		"admin'--",
		"' UNION SELECT * FROM Users; --",
		"'; exec sp_executesql N'DROP TABLE Users;--",
	}
	for _, in := range inputs {
		if res := ValidateUsername(in); res.IsValid {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestValidateUsername_XSS(t *testing.T) {
	inputs := []string{
		"<script>alert('xss')</script>",
		"<img src='x' onerror='alert(1)'>",
		"<svg onload='alert(1)'>",
		"javascript:alert(1)",
		"<a onclick='alert(1)'>Click me</a>",
	}
	for _, in := range inputs {
		if res := ValidateUsername(in); res.IsValid {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestValidateUsername_Valid(t *testing.T) {
	res := ValidateUsername("john_doe123")
	if !res.IsValid {
		t.Fatalf("expected valid, got error: %s", res.ErrorMessage)
	}
	if res.SanitizedValue != "john_doe123" {
		t.Fatalf("expected sanitized value unchanged, got %q", res.SanitizedValue)
	}
}

func TestValidateUsername_TrimsWhitespace(t *testing.T) {
	res := ValidateUsername("  alice  ")
	if !res.IsValid || res.SanitizedValue != "alice" {
		t.Fatalf("expected trimmed valid username, got %+v", res)
	}
}

func TestValidateUsername_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if res := ValidateUsername(in); res.IsValid {
			t.Errorf("expected empty input %q to be rejected", in)
		}
	}
}

func TestValidateUsername_TooShort(t *testing.T) {
	if res := ValidateUsername("ab"); res.IsValid {
		t.Fatalf("expected 2-char username to be rejected")
	}
}

// Encoding expansion counts against the length limit: an ampersand becomes
// "&amp;" before the pattern runs, so anything carrying special characters
// fails. Unicode names fall out the same way.
func TestValidateUsername_EncodedEntitiesRejected(t *testing.T) {
	for _, in := range []string{"a&b_name", "ren<e", "josé"} {
		if res := ValidateUsername(in); res.IsValid {
			t.Errorf("expected %q to be rejected after encoding", in)
		}
	}
}

func TestValidateEmail_Valid(t *testing.T) {
	res := ValidateEmail("John.Doe@Example.com")
	if !res.IsValid {
		t.Fatalf("expected valid, got error: %s", res.ErrorMessage)
	}
	if res.SanitizedValue != "john.doe@example.com" {
		t.Fatalf("expected lower-cased email, got %q", res.SanitizedValue)
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"not-an-email",
		"missing@tld",
		"a@b.c",
		"<script>@example.com",
		"user'@example.com",
		"semi;colon@example.com",
	}
	for _, in := range inputs {
		if res := ValidateEmail(in); res.IsValid {
			t.Errorf("expected %q to be rejected", in)
		}
	}
}

func TestValidateEmail_TooLong(t *testing.T) {
	local := make([]byte, 95)
	for i := range local {
		local[i] = 'a'
	}
	if res := ValidateEmail(string(local) + "@example.com"); res.IsValid {
		t.Fatalf("expected over-length email to be rejected")
	}
}

func TestStripDangerous(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"robert'; DROP TABLE--", "robert DROP TABLE"},
		{`say "hello"`, "say hello"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"<b>bold</b> text", "bold text"},
		{"xp_cmdshell", "cmdshell"},
		{"/* comment */ rest", " comment  rest"},
		{"plain search term", "plain search term"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripDangerous(c.in); got != c.want {
			t.Errorf("StripDangerous(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ng!pass", true},
		{"", false},
		{"Sh0rt!a", false},
		{"nouppercase1!", false},
		{"NOLOWERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSymbols123", false},
	}
	for _, c := range cases {
		res := ValidatePassword(c.password)
		if res.IsValid != c.valid {
			t.Errorf("ValidatePassword(%q): got valid=%v, want %v (%s)",
				c.password, res.IsValid, c.valid, res.ErrorMessage)
		}
	}
}
