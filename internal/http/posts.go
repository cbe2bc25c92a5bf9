package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/service"
)

type PostInput struct {
	Title   string `json:"title" binding:"required,min=3,max=255"`
	Content string `json:"content" binding:"required"`
}

// ListPosts handles GET /api/posts.
func (e *Env) ListPosts(c *gin.Context) {
	summaries, err := e.Posts.Summaries()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetPost handles GET /api/posts/:id.
func (e *Env) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := e.Posts.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost handles POST /api/posts.
func (e *Env) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	post, err := e.Posts.Create(principalFrom(c), service.PostInput(input))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	e.broadcastMessage(WsMessage{Type: "new_post", Data: post})
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /api/posts/:id.
func (e *Env) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	post, err := e.Posts.Update(principalFrom(c), id, service.PostInput(input))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/:id.
func (e *Env) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := e.Posts.Delete(principalFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
