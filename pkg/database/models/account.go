package models

import "time"

// AccountSnapshot is a account record at the moment it was fetched.
// The table is owned by the SQL migrations.
type AccountSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Username  string    `gorm:"type:varchar(100)" json:"username"`
	Level     int       `json:"level"`
	Wins      int       `json:"wins"`
	FetchTime time.Time `json:"fetchTime"`
}
