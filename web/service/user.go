package service

import (
	"taskdesk/database"
	"taskdesk/database/model"
	"taskdesk/logger"
	"taskdesk/util/common"
	"taskdesk/util/crypto"
)

type UserService struct{}

// CheckUser verifies an email/password pair and returns the matching user,
// or nil on any failure. Unknown email and wrong password are deliberately
// indistinguishable to the caller. When duplicate registrations exist for
// an email, the first row wins.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	// Old rows may predate the role column.
	if user.Role == "" {
		user.Role = model.RoleStaff
	}

	return user
}

// RegisterUser hashes the password and inserts a new account. There is no
// uniqueness check on email; duplicate accounts are possible and login
// resolves them by first match.
func (s *UserService) RegisterUser(name string, email string, password string, role model.Role) (*model.User, error) {
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetFirstUser returns the first account in the table. Used by the CLI to
// show the seeded admin.
func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the credentials of the first account from the
// shell, for recovering a locked-out install.
func (s *UserService) UpdateFirstUser(email string, password string) error {
	if email == "" {
		return common.NewError("email can not be empty")
	} else if password == "" {
		return common.NewError("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Email = email
		user.Password = hash
		user.Role = model.RoleAdmin
		return db.Create(user).Error
	} else if err != nil {
		return err
	}
	user.Email = email
	user.Password = hash
	return db.Save(user).Error
}
