package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	passwords := []string{"P@ss1", "", "пароль с юникодом", "a very long password with spaces and 1234567890 symbols !@#$%"}

	for _, p := range passwords {
		hash, err := HashPassword(p, 4)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", p, err)
		}
		if !CheckPassword(p, hash) {
			t.Errorf("CheckPassword(%q, hash) = false, want true", p)
		}
		if CheckPassword(p+"x", hash) {
			t.Errorf("CheckPassword(%q, hash) = true for wrong password", p+"x")
		}
	}
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	h1, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt is not embedded")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	malformed := []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"}
	for _, h := range malformed {
		if CheckPassword("anything", h) {
			t.Errorf("CheckPassword with malformed hash %q = true, want false", h)
		}
	}
}
