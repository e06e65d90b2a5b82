package database

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(cfg config.Config) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.DBUser,
		Addr:     cfg.DBAddr,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
	})
}

// CreateSchema creates the lobby tables that do not exist yet.
func CreateSchema(db *pg.DB) error {
	for _, model := range []interface{}{
		(*models.User)(nil),
		(*models.Game)(nil),
		(*models.Seat)(nil),
	} {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
