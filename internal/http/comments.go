package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentInput struct {
	Content string `json:"content" binding:"required,min=3"`
}

// ListComments handles GET /api/posts/:id/comments.
func (e *Env) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := e.Comments.ListByPost(postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/posts/:id/comments.
func (e *Env) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	comment, err := e.Comments.Create(principalFrom(c), postID, input.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	e.broadcastMessage(WsMessage{Type: "new_comment", Data: comment})
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment handles PUT /api/comments/:id.
func (e *Env) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	comment, err := e.Comments.Update(principalFrom(c), id, input.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:id.
func (e *Env) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := e.Comments.Delete(principalFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
