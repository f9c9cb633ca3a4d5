package repository

import (
	"errors"
	"testing"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

func TestCreateAndFindUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	hash, err := repo.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: hash}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser() did not assign an id")
	}

	byEmail, err := repo.FindUserByEmail("bob@example.com")
	if err != nil || byEmail == nil {
		t.Fatalf("FindUserByEmail() = %v, %v", byEmail, err)
	}
	byUsername, err := repo.FindUserByUsername("bob")
	if err != nil || byUsername == nil {
		t.Fatalf("FindUserByUsername() = %v, %v", byUsername, err)
	}
	if byEmail.ID != byUsername.ID {
		t.Error("email and username lookups returned different users")
	}
}

func TestFindUserByIdentifierMatchesEitherColumn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	repo.CreateUser(&models.User{Username: "carol", Email: "carol@example.com", PasswordHash: "x"})

	for _, identifier := range []string{"carol", "carol@example.com"} {
		user, err := repo.FindUserByIdentifier(identifier)
		if err != nil {
			t.Fatalf("FindUserByIdentifier(%q) error = %v", identifier, err)
		}
		if user == nil {
			t.Fatalf("FindUserByIdentifier(%q) = nil, want user", identifier)
		}
	}

	user, err := repo.FindUserByIdentifier("nobody")
	if err != nil {
		t.Fatalf("FindUserByIdentifier(nobody) error = %v", err)
	}
	if user != nil {
		t.Fatal("unknown identifier should return nil, nil")
	}
}

func TestFindUserByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindUserByID(12345)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUserByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	hash, err := repo.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := repo.VerifyPassword(hash, "correct horse"); err != nil {
		t.Errorf("VerifyPassword() with right password error = %v", err)
	}
	if err := repo.VerifyPassword(hash, "wrong"); err == nil {
		t.Error("VerifyPassword() with wrong password should fail")
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "dave", Email: "dave@example.com", PasswordHash: "x"}
	repo.CreateUser(user)

	if err := repo.UpdateProfile(user, "david", "david@example.com"); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	updated, err := repo.FindUserByID(user.ID)
	if err != nil {
		t.Fatalf("FindUserByID() error = %v", err)
	}
	if updated.Username != "david" || updated.Email != "david@example.com" {
		t.Errorf("profile after update = %s/%s", updated.Username, updated.Email)
	}
}
