package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagsController struct {
	tags   TagStore
	groups WordGroupStore
}

func NewTagsController(tags TagStore, groups WordGroupStore) *TagsController {
	return &TagsController{tags: tags, groups: groups}
}

// GetAllTags returns every tag, or those matching ?q= case-insensitively
// GET /api/tags
func (tc *TagsController) GetAllTags(c *gin.Context) {
	query := c.Query("q")

	var (
		result any
		err    error
	)
	if query != "" {
		result, err = tc.tags.SearchTags(c.Request.Context(), query)
	} else {
		result, err = tc.tags.GetAllTags(c.Request.Context())
	}
	if err != nil {
		respondInternalError(c, err, "get tags")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetWordGroupsByTag returns the word groups carrying a tag
// GET /api/tags/:name/wordgroups
func (tc *TagsController) GetWordGroupsByTag(c *gin.Context) {
	groups, err := tc.groups.GetWordGroupsByTag(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondInternalError(c, err, "get word groups by tag")
		return
	}
	c.JSON(http.StatusOK, groups)
}
