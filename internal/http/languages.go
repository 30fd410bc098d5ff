package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LanguagesController struct {
	store LanguageStore
}

func NewLanguagesController(store LanguageStore) *LanguagesController {
	return &LanguagesController{store: store}
}

// GetAllLanguages returns the reference languages ordered by name
// GET /api/languages
func (lc *LanguagesController) GetAllLanguages(c *gin.Context) {
	languages, err := lc.store.GetAllLanguages(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "get languages")
		return
	}
	c.JSON(http.StatusOK, languages)
}
