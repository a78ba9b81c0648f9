package usecases

import (
	"errors"
	"testing"
)

func TestUserUseCase_Register(t *testing.T) {
	repos := newTestRepositories()
	userUC := NewUserUseCase(repos)

	t.Run("should create the company and its first user together", func(t *testing.T) {
		user, err := userUC.Register("Dupont SARL", "512", "Jean Dupont", " Jean@Dupont.FR ", "secret123")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if user.Email != "jean@dupont.fr" {
			t.Errorf("Expected normalized email, got: %s", user.Email)
		}
		if user.CompanyID == 0 {
			t.Error("Expected the user to be attached to the new company")
		}

		company, err := repos.Company.GetByID(user.CompanyID)
		if err != nil {
			t.Fatalf("Expected the company to exist, got: %v", err)
		}
		if company.BankControlAccount != "512" {
			t.Errorf("Expected control account 512, got: %s", company.BankControlAccount)
		}
	})

	t.Run("should refuse a duplicate email", func(t *testing.T) {
		_, err := userUC.Register("Autre SARL", "512", "Other", "jean@dupont.fr", "secret123")
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Expected ErrConflict, got: %v", err)
		}
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	repos := newTestRepositories()
	userUC := NewUserUseCase(repos)

	if _, err := userUC.Register("Dupont SARL", "512", "Jean Dupont", "jean@dupont.fr", "secret123"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	t.Run("should authenticate with the right password", func(t *testing.T) {
		user, err := userUC.Authenticate("jean@dupont.fr", "secret123")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if user.Email != "jean@dupont.fr" {
			t.Errorf("Expected the registered user, got: %s", user.Email)
		}
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		if _, err := userUC.Authenticate("jean@dupont.fr", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("should reject an unknown email the same way", func(t *testing.T) {
		if _, err := userUC.Authenticate("nobody@dupont.fr", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestUserUseCase_ChangePassword(t *testing.T) {
	repos := newTestRepositories()
	userUC := NewUserUseCase(repos)

	user, err := userUC.Register("Dupont SARL", "512", "Jean Dupont", "jean@dupont.fr", "secret123")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	t.Run("should require the current password", func(t *testing.T) {
		if err := userUC.ChangePassword(user.ID, "wrong", "newsecret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("should rotate the password", func(t *testing.T) {
		if err := userUC.ChangePassword(user.ID, "secret123", "newsecret"); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if _, err := userUC.Authenticate("jean@dupont.fr", "newsecret"); err != nil {
			t.Errorf("Expected the new password to work, got: %v", err)
		}
		if _, err := userUC.Authenticate("jean@dupont.fr", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected the old password to be rejected, got: %v", err)
		}
	})
}
