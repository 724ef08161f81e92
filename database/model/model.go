// Package model defines the persisted entities of the shop.
package model

// User is a registered account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Password string `json:"-" gorm:"not null"`
	Name     string `json:"name" gorm:"size:200"`
	Email    string `json:"email" gorm:"size:200"`
	Admin    bool   `json:"admin" gorm:"not null;default:false"`
}

type Category struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null;size:100"`
}

// Article is a catalog item. CategoryId nil means the article has no category.
type Article struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Price       float64   `json:"price" gorm:"not null;default:0"`
	Tax         int       `json:"tax" gorm:"not null;default:21"`
	Description string    `json:"description" gorm:"size:255"`
	Image       string    `json:"image" gorm:"size:255"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	CategoryId  *int      `json:"categoryId" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}

// HasImage reports whether an image file is attached.
func (a *Article) HasImage() bool {
	return a.Image != ""
}

// CategoryID returns the category id, 0 when the article has none.
func (a *Article) CategoryID() int {
	if a.CategoryId == nil {
		return 0
	}
	return *a.CategoryId
}

// Setting is a key/value row for values the server generates and keeps, like the session secret.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex;not null;size:100"`
	Value string `json:"value"`
}
