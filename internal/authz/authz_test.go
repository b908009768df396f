package authz

import "testing"

func TestAuthorizeDecisionTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		class AccessClass
		role  Role
		want  Decision
	}{
		{"public anonymous", Public, RoleNone, Allow},
		{"public admin", Public, RoleAdmin, Allow},
		{"public manager", Public, RoleManager, Allow},
		{"public staff", Public, RoleStaff, Allow},

		{"authenticated anonymous", Authenticated, RoleNone, Deny},
		{"authenticated admin", Authenticated, RoleAdmin, Allow},
		{"authenticated manager", Authenticated, RoleManager, Allow},
		{"authenticated staff", Authenticated, RoleStaff, Allow},
		{"authenticated unknown role", Authenticated, Role("SUPERUSER"), Deny},

		{"admin only anonymous", AdminOnly, RoleNone, Deny},
		{"admin only admin", AdminOnly, RoleAdmin, Allow},
		{"admin only manager", AdminOnly, RoleManager, Deny},
		{"admin only staff", AdminOnly, RoleStaff, Deny},

		{"admin or manager anonymous", AdminOrManager, RoleNone, Deny},
		{"admin or manager admin", AdminOrManager, RoleAdmin, Allow},
		{"admin or manager manager", AdminOrManager, RoleManager, Allow},
		{"admin or manager staff", AdminOrManager, RoleStaff, Deny},

		{"unknown class admin", AccessClass("ROOT_ONLY"), RoleAdmin, Deny},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := Authorize(test.class, test.role); got != test.want {
				t.Errorf("Authorize(%s, %q): got %s, want %s", test.class, test.role, got, test.want)
			}
			// Pure function: the same inputs must decide the same way twice.
			if again := Authorize(test.class, test.role); again != test.want {
				t.Errorf("Authorize(%s, %q) second call: got %s, want %s", test.class, test.role, again, test.want)
			}
		})
	}
}

func TestCanRecordTransactions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		role Role
		want bool
	}{
		{RoleManager, true},
		{RoleAdmin, false}, // admins do not inherit the manager-only gate
		{RoleStaff, false},
		{RoleNone, false},
	}

	for _, test := range tests {
		if got := CanRecordTransactions(test.role); got != test.want {
			t.Errorf("CanRecordTransactions(%q): got %v, want %v", test.role, got, test.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	t.Parallel()
	for _, role := range []Role{RoleAdmin, RoleManager, RoleStaff} {
		if !role.Valid() {
			t.Errorf("Role(%q).Valid(): got false, want true", role)
		}
	}
	for _, role := range []Role{RoleNone, Role("admin"), Role("OWNER")} {
		if role.Valid() {
			t.Errorf("Role(%q).Valid(): got true, want false", role)
		}
	}
}
