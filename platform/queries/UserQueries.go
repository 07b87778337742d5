package queries

import (
	"github.com/go-pg/pg/v10"

	"istopoly/app/models"
)

func GetUserData(userID string, db *pg.DB) (models.User, error) {
	user := models.User{Id: userID}
	err := db.Model(&user).WherePK().Select()
	return user, err
}
