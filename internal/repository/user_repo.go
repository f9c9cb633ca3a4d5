package repository

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nulllpunkt/Cinematch/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByIdentifier(identifier string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateProfile(user *models.User, username, email string) error
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindUserByEmail(email string) (*models.User, error) {
	return r.findOne("email = ?", email)
}

func (r *userRepo) FindUserByUsername(username string) (*models.User, error) {
	return r.findOne("username = ?", username)
}

// FindUserByIdentifier matches the login field against either column, so
// users can sign in with whichever they remember.
func (r *userRepo) FindUserByIdentifier(identifier string) (*models.User, error) {
	return r.findOne("email = ? OR username = ?", identifier, identifier)
}

func (r *userRepo) findOne(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // not found is not an error here
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateProfile(user *models.User, username, email string) error {
	user.Username = username
	user.Email = email
	return r.db.Save(user).Error
}

func (r *userRepo) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *userRepo) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
