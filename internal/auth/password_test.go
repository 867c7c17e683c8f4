package auth

import "testing"

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2!" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter2!") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "hunter3!") {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPassword_EmptyHashAlwaysFails(t *testing.T) {
	// Unknown-user path: the comparison still runs but must fail even for
	// the value the dummy hash encodes.
	if CheckPassword("", "password") {
		t.Fatal("empty hash accepted a password")
	}
	if CheckPassword("", "") {
		t.Fatal("empty hash accepted empty password")
	}
}
