package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;size:80;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;size:120;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:256;not null"`
	Role         string    `gorm:"column:role;size:20;not null;default:applicant"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
