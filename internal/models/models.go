package models

import (
	"time"
)

// Role names seeded at migration time.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Role is a named authority granted to users.
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;size:60;not null" json:"name"`
}

// User is a registered account. Username and email share the login
// namespace: either one identifies the account at login.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:60;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// Post is an authored article. PublicationDate is set once at creation
// and never changed by updates.
type Post struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	AuthorID        uint      `gorm:"not null;index" json:"-"`
	Author          *User     `json:"author,omitempty"`
	PublicationDate time.Time `gorm:"not null;index" json:"publicationDate"`
	Comments        []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Comment belongs to exactly one Post and one User.
type Comment struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	PublicationDate time.Time `gorm:"not null" json:"publicationDate"`
	AuthorID        uint      `gorm:"not null;index" json:"-"`
	Author          *User     `json:"author,omitempty"`
	PostID          uint      `gorm:"not null;index" json:"postId"`
}

// PostSummary is the listing projection of a Post. CommentCount is
// computed with a join, not stored.
type PostSummary struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	PublicationDate time.Time `json:"publicationDate"`
	Author          string    `json:"author"`
	CommentCount    int64     `json:"commentCount"`
}
