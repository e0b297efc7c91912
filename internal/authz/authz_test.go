package authz

import (
	"reflect"
	"testing"
)

func TestAuthorizer_Authorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		permitted []string
		policy    MatchPolicy
		requested string
		want      Decision
	}{
		{
			name:      "requested scope in permitted set",
			permitted: []string{"read", "write"},
			policy:    MatchExact,
			requested: "read",
			want:      Allow,
		},
		{
			name:      "requested scope not in permitted set",
			permitted: []string{"read", "write"},
			policy:    MatchExact,
			requested: "delete",
			want:      Deny,
		},
		{
			name:      "empty requested scope",
			permitted: []string{"read", "write"},
			policy:    MatchExact,
			requested: "",
			want:      Deny,
		},
		{
			name:      "whitespace-only requested scope",
			permitted: []string{"read"},
			policy:    MatchExact,
			requested: "   ",
			want:      Deny,
		},
		{
			name:      "empty permitted set denies everything",
			permitted: nil,
			policy:    MatchExact,
			requested: "read",
			want:      Deny,
		},
		{
			name:      "all requested scopes covered",
			permitted: []string{"read", "write"},
			policy:    MatchExact,
			requested: "read write",
			want:      Allow,
		},
		{
			name:      "one uncovered scope denies the whole claim",
			permitted: []string{"read", "write"},
			policy:    MatchExact,
			requested: "read delete",
			want:      Deny,
		},
		{
			name:      "exact policy does not match hierarchy descendants",
			permitted: []string{"orders"},
			policy:    MatchExact,
			requested: "orders:read",
			want:      Deny,
		},
		{
			name:      "prefix policy matches hierarchy descendants",
			permitted: []string{"orders"},
			policy:    MatchPrefix,
			requested: "orders:read",
			want:      Allow,
		},
		{
			name:      "prefix policy still matches verbatim",
			permitted: []string{"orders"},
			policy:    MatchPrefix,
			requested: "orders",
			want:      Allow,
		},
		{
			name:      "prefix policy requires the delimiter",
			permitted: []string{"orders"},
			policy:    MatchPrefix,
			requested: "ordersarchive",
			want:      Deny,
		},
		{
			name:      "prefix policy denies unrelated hierarchy",
			permitted: []string{"orders"},
			policy:    MatchPrefix,
			requested: "billing:read",
			want:      Deny,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAuthorizer(tt.permitted, tt.policy)
			if err != nil {
				t.Fatalf("NewAuthorizer() error = %v", err)
			}

			if got := a.Authorize(tt.requested); got != tt.want {
				t.Errorf("Authorize(%q) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestNewAuthorizer_UnknownPolicy(t *testing.T) {
	t.Parallel()

	if _, err := NewAuthorizer([]string{"read"}, "glob"); err == nil {
		t.Error("NewAuthorizer() with unknown policy should fail")
	}
}

func TestDecision_String(t *testing.T) {
	t.Parallel()

	if got := Allow.String(); got != "ALLOW" {
		t.Errorf("Allow.String() = %q, want ALLOW", got)
	}
	if got := Deny.String(); got != "DENY" {
		t.Errorf("Deny.String() = %q, want DENY", got)
	}

	// The zero value never allows.
	var d Decision
	if d != Deny {
		t.Error("zero value Decision should be Deny")
	}
}

func TestDecision_MarshalText(t *testing.T) {
	t.Parallel()

	got, err := Allow.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(got) != "ALLOW" {
		t.Errorf("MarshalText() = %q, want ALLOW", got)
	}
}

func TestParseScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty string", input: "", want: nil},
		{name: "single scope", input: "read", want: []string{"read"}},
		{name: "multiple scopes", input: "read write", want: []string{"read", "write"}},
		{name: "extra whitespace", input: "  read   write  ", want: []string{"read", "write"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseScopes(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseScopes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
