package models

// Tag is a user-owned label that can be attached to recipes
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;size:255" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

func (t Tag) String() string {
	return t.Name
}
