package models

import "time"

// Shop may have no owner: legacy rows imported before ownership existed
// keep UserID null and are only manageable by admins.
type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Address   string `gorm:"size:255;not null" json:"address"`
	Telephone string `gorm:"size:20;not null" json:"telephone"`
	OpenTime  string `gorm:"size:5;not null" json:"open_time"`
	CloseTime string `gorm:"size:5;not null" json:"close_time"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
