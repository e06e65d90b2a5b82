package queries

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/go-pg/pg/v10"
)

func CreateUser(user *models.User, db *pg.DB) error {
	_, err := db.Model(user).Insert()
	return err
}

func GetUserByEmail(email string, db *pg.DB) (*models.User, error) {
	user := new(models.User)
	err := db.Model(user).Where("email = ?", email).Select()
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserData(user_id string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: user_id}
	err := db.Model(user).WherePK().Select()
	if err != nil {
		return nil, err
	}
	return user, nil
}
