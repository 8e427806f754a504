package i18n

import (
	"github.com/gin-gonic/gin"
)

const keyTranslator = "translator"

// negotiates the request language from ?lang= then Accept-Language
func (c *Catalog) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		lang := c.Match(ctx.Query("lang"), ctx.GetHeader("Accept-Language"))

		ctx.Set(keyTranslator, c.Translator(lang))
		ctx.Header("Content-Language", lang)
		ctx.Next()
	}
}

// returns the translator set by Middleware, or one for the default language
func FromContext(ctx *gin.Context, fallback *Catalog) Translator {
	if v, ok := ctx.Get(keyTranslator); ok {
		if t, ok := v.(Translator); ok {
			return t
		}
	}

	return fallback.Translator(fallback.Default())
}
