package authz

import "testing"

func TestAllowListPolicy(t *testing.T) {
	policy := NewAllowListPolicy([]string{"admin-1", "admin-2"})

	cases := []struct {
		userID string
		want   bool
	}{
		{"admin-1", true},
		{"admin-2", true},
		{"user-1", false},
		{"", false},
	}
	for _, c := range cases {
		if got := policy.IsAdmin(c.userID); got != c.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", c.userID, got, c.want)
		}
	}
}

func TestAllowListPolicyEmpty(t *testing.T) {
	policy := NewAllowListPolicy(nil)
	if policy.IsAdmin("anyone") {
		t.Error("empty allow-list must grant no admin")
	}
}
