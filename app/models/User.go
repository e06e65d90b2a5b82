package models

type User struct {
	tableName struct{} `pg:"users"`

	Id       string `pg:",pk"`
	Email    string `pg:",unique"`
	Password string `json:"-"`
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
