package validator

import "testing"

func TestValidator(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Error("new validator should be valid")
	}
	v.Check(true, "ok", "should not be recorded")
	v.Check(false, "field", "first message")
	v.Check(false, "field", "second message")
	if v.Valid() {
		t.Error("validator with errors should not be valid")
	}
	if got := v.Errors["field"]; got != "first message" {
		t.Errorf("expected first message to win; got %q", got)
	}
}

func TestMatches(t *testing.T) {
	if !Matches("user@example.com", EmailRX) {
		t.Error("expected valid email to match")
	}
	if Matches("not-an-email", EmailRX) {
		t.Error("expected invalid email not to match")
	}
	if !Matches("science-fiction", SlugRX) {
		t.Error("expected valid slug to match")
	}
	if Matches("bad slug!", SlugRX) {
		t.Error("expected invalid slug not to match")
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("user", "user", "moderator", "admin") {
		t.Error("expected permitted value to pass")
	}
	if PermittedValue("owner", "user", "moderator", "admin") {
		t.Error("expected unknown value to fail")
	}
}

func TestUnique(t *testing.T) {
	if !Unique([]string{"a", "b", "c"}) {
		t.Error("expected distinct values to be unique")
	}
	if Unique([]string{"a", "a"}) {
		t.Error("expected repeated values not to be unique")
	}
}
