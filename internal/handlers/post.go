package handlers

import (
	"fmt"
	"net/http"

	"postlike/internal/models"
	"postlike/internal/services"
	"postlike/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts     *services.PostService
	reactions *services.ReactionService
}

func NewPostHandler(posts *services.PostService, reactions *services.ReactionService) *PostHandler {
	return &PostHandler{posts: posts, reactions: reactions}
}

// postDetail is a post plus its rendered body.
type postDetail struct {
	models.Post
	ContentHTML string `json:"content_html"`
}

// List - GET /api
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create - POST /api
func (h *PostHandler) Create(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	var in services.CreatePostInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), id, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Detail - GET /api/:postId
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postDetail{
		Post:        *post,
		ContentHTML: utils.RenderMarkdown(post.Content),
	})
}

// React - PUT /api/:postId
// Body {"liked": "True"} or {"unliked": "True"}; liked wins if both are set.
func (h *PostHandler) React(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	var in services.ReactionInput
	if !bindJSON(c, &in) {
		return
	}

	post, err := h.reactions.Apply(c.Request.Context(), id, postID, in.Desired())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func postIDParam(c *gin.Context) (uint, bool) {
	postID, err := utils.ParseID(c.Param("postId"))
	if err != nil {
		RespondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return 0, false
	}
	return postID, true
}
