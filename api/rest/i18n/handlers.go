package i18n

import (
	"net/http"

	"codeberg.org/krishisakhi/server/internal/errors"
	"codeberg.org/krishisakhi/server/internal/i18n"
	"github.com/gin-gonic/gin"
)

// lists supported languages, default first
func ListLanguagesHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, LanguagesResponse{
			Default:   catalog.Default(),
			Languages: catalog.Languages(),
		})
	}
}

// MessagesHandler godoc
// @Summary UI strings for a language
// @Description Every UI string for the language, with missing keys filled from the default language
// @Tags i18n
// @Produce json
// @Param lang path string true "language code, e.g. en or hi"
// @Success 200 {object} MessagesResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/i18n/{lang} [get]
func MessagesHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Param("lang")
		if !catalog.Supports(lang) {
			errors.NotFound(c, "language "+lang)
			return
		}

		c.JSON(http.StatusOK, MessagesResponse{
			Language: lang,
			Messages: catalog.Messages(lang),
		})
	}
}
