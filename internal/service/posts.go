package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"quill/internal/auth"
	"quill/internal/models"
)

// PostInput carries the mutable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// PostService implements CRUD over posts with ownership checks.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService instance.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create stores a new post owned by the principal. The publication
// date is set here and never touched again.
func (s *PostService) Create(p auth.Principal, in PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:           in.Title,
		Content:         in.Content,
		AuthorID:        p.UserID,
		PublicationDate: time.Now(),
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(post, post.ID).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns a post with its author and comments, oldest comment
// first.
func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("publication_date asc")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces the title and content of a post. Only the owner or
// an admin may update; the publication date is left untouched.
func (s *PostService) Update(p auth.Principal, id uint, in PostInput) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canModify(p, post.AuthorID, true) {
		return nil, ErrForbidden
	}
	updates := map[string]interface{}{"title": in.Title, "content": in.Content}
	if err := s.db.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post and all of its comments. Only the owner or an
// admin may delete.
func (s *PostService) Delete(p auth.Principal, id uint) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(p, post.AuthorID, true) {
		return ErrForbidden
	}
	// Comments are deleted in the same transaction rather than relying
	// on the store's FK cascade, which SQLite leaves off by default.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// Summaries lists all posts newest first, each with its author's
// username and a computed comment count.
func (s *PostService) Summaries() ([]models.PostSummary, error) {
	summaries := make([]models.PostSummary, 0)
	err := s.db.Model(&models.Post{}).
		Select("posts.id, posts.title, posts.publication_date, users.username AS author, COUNT(comments.id) AS comment_count").
		Joins("INNER JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id, posts.title, posts.publication_date, users.username").
		Order("posts.publication_date DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
