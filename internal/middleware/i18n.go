// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage picks the first supported entry of an Accept-Language
// header such as "zh-TW,zh;q=0.9,en;q=0.8".
func resolveLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		var lang string
		switch tag {
		case "zh-TW", "zh-Hant", "zh_TW", "zh":
			lang = "zh_TW"
		case "en", "en-US", "en-GB":
			lang = "en"
		default:
			continue
		}
		if i18n.IsSupported(lang) {
			return lang
		}
	}
	return i18n.DefaultLanguage()
}
