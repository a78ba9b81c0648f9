package usecases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/bigy003/Compta-sub000/internal/utils"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for a wrong email/password combination;
// it stays deliberately vague about which of the two was wrong
var ErrInvalidCredentials = errors.New("invalid credentials")

type userUseCase struct {
	repos *repositories.Repositories
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(repos *repositories.Repositories) UserUseCase {
	return &userUseCase{repos: repos}
}

// Register provisions a company together with its first user. The control
// account may be left empty here; accounting-side operations will refuse to
// run until it is configured.
func (uc *userUseCase) Register(companyName, controlAccount, name, email, password string) (*models.User, error) {
	email = utils.NormalizeEmail(email)

	if _, err := uc.repos.User.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:  utils.SanitizeString(name),
		Email: email,
	}
	if err := user.HashPassword(password); err != nil {
		return nil, err
	}

	err := uc.repos.Tx.Do(func(r *repositories.Repositories) error {
		company := &models.Company{
			Name:               utils.SanitizeString(companyName),
			BankControlAccount: strings.TrimSpace(controlAccount),
		}
		if err := r.Company.Create(company); err != nil {
			return err
		}
		user.CompanyID = company.ID
		return r.User.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Authenticate(email, password string) (*models.User, error) {
	user, err := uc.repos.User.GetByEmail(utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (uc *userUseCase) GetUser(id uint) (*models.User, error) {
	user, err := uc.repos.User.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := uc.repos.User.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	if err := user.CheckPassword(currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := user.HashPassword(newPassword); err != nil {
		return err
	}
	return uc.repos.User.Update(user)
}
