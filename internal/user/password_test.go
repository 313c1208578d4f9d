package user

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	salt, err := GenerateSaltHex()
	if err != nil {
		t.Fatalf("GenerateSaltHex: %v", err)
	}
	hash, err := HashPassword("p@ssw0rd", salt)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	if !VerifyPassword("p@ssw0rd", salt, hash) {
		t.Fatalf("expected verify ok")
	}
	if VerifyPassword("errada", salt, hash) {
		t.Fatalf("expected verify fail")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	salt, err := GenerateSaltHex()
	if err != nil {
		t.Fatalf("GenerateSaltHex: %v", err)
	}
	if _, err := HashPassword("", salt); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestRolesRoundTrip(t *testing.T) {
	joined := RolesJoin([]string{"admin", " atendente ", ""})
	if joined != "admin,atendente" {
		t.Fatalf("unexpected join: %q", joined)
	}
	u := User{Roles: joined}
	roles := u.RolesSlice()
	if len(roles) != 2 || roles[0] != "admin" || roles[1] != "atendente" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}
