package model

// User 對應 users 資料表的一列
type User struct {
	ID             int    `db:"id" json:"id"`
	Email          string `db:"email" json:"email"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	HashedPassword string `db:"hashed_password" json:"-"`
}
