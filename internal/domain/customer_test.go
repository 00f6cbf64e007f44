package domain

import "testing"

func TestRole_IsValid(t *testing.T) {
	if !RoleAdmin.IsValid() || !RoleCustomer.IsValid() {
		t.Fatal("expected admin and customer to be valid roles")
	}
	if Role("viewer").IsValid() {
		t.Fatal("expected unknown role to be invalid")
	}
}

func TestRole_CanView(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		userID   string
		customer string
		want     bool
	}{
		{"admin sees anyone", RoleAdmin, "ADMIN", "CUST001", true},
		{"customer sees self", RoleCustomer, "CUST001", "CUST001", true},
		{"customer cannot see others", RoleCustomer, "CUST001", "CUST002", false},
		{"unknown role", Role("x"), "CUST001", "CUST001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.CanView(tt.userID, tt.customer); got != tt.want {
				t.Fatalf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomer_Update(t *testing.T) {
	c := Customer{ID: "CUST001", Name: "Ram", PasswordHash: "h1", Address: "Pokhara", Mobile: "9800000000", Role: RoleCustomer}

	updated := c.Update(CustomerPatch{Name: "Ram Bahadur"})
	if updated.Name != "Ram Bahadur" || updated.Address != "Pokhara" || updated.Mobile != "9800000000" || updated.PasswordHash != "h1" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if c.Name != "Ram" {
		t.Fatal("receiver must not be modified")
	}

	updated = c.Update(CustomerPatch{Name: "Ram", PasswordHash: "h2", Address: "Kaski"})
	if updated.PasswordHash != "h2" || updated.Address != "Kaski" {
		t.Fatalf("expected password and address to change, got %+v", updated)
	}
}
