package auth

import (
	"errors"
	"testing"

	jwt "github.com/form3tech-oss/jwt-go"
)

func TestIssueThenParse(t *testing.T) {
	token, err := Issue("secret", "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := Parse("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "user-1" {
		t.Fatalf("id = %q, want user-1", id)
	}
}

func TestParseRejects(t *testing.T) {
	good, err := Issue("secret", "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	noClaim, err := jwt.New(jwt.SigningMethodHS256).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	cases := []struct {
		name, secret, token string
	}{
		{"wrong secret", "other", good},
		{"garbage", "secret", "not.a.token"},
		{"empty", "secret", ""},
		{"missing user", "secret", noClaim},
	}
	for _, c := range cases {
		if _, err := Parse(c.secret, c.token); !errors.Is(err, ErrBadToken) {
			t.Fatalf("%s: err = %v, want ErrBadToken", c.name, err)
		}
	}
}
