package singleinstance

import (
	"testing"
)

func TestClaimIsExclusive(t *testing.T) {
	t.Setenv("SINGLEINSTANCE_PORT", "49571")

	release, err := Claim()
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	if _, err := Claim(); err == nil {
		t.Fatal("second claim should fail while the first holds the port")
	}

	release()

	release2, err := Claim()
	if err != nil {
		t.Fatalf("claim after release failed: %v", err)
	}
	release2()
}

func TestGetPort(t *testing.T) {
	cases := []struct {
		env  string
		want int
	}{
		{"", defaultPort},
		{"50000", 50000},
		{"notaport", defaultPort},
		{"80", defaultPort},
		{"70000", defaultPort},
	}
	for _, c := range cases {
		t.Setenv("SINGLEINSTANCE_PORT", c.env)
		if got := getPort(); got != c.want {
			t.Errorf("getPort() with %q = %d, want %d", c.env, got, c.want)
		}
	}
}
