package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"quill/internal/auth"
	"quill/internal/models"
)

// CommentService implements CRUD over comments. Updates are restricted
// to the author; deletion also allows admins.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListByPost returns a post's comments oldest first, or ErrNotFound if
// the post itself does not exist.
func (s *CommentService) ListByPost(postID uint) ([]models.Comment, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0)
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("publication_date asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create stores a new comment on an existing post.
func (s *CommentService) Create(p auth.Principal, postID uint, content string) (*models.Comment, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Content:         content,
		PublicationDate: time.Now(),
		AuthorID:        p.UserID,
		PostID:          postID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Update replaces a comment's content. Author only; admins get no
// override here.
func (s *CommentService) Update(p auth.Principal, id uint, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canModify(p, comment.AuthorID, false) {
		return nil, ErrForbidden
	}
	if err := s.db.Model(&comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment. Author or admin.
func (s *CommentService) Delete(p auth.Principal, id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(p, comment.AuthorID, true) {
		return ErrForbidden
	}
	return s.db.Delete(&comment).Error
}

func (s *CommentService) postExists(postID uint) error {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
