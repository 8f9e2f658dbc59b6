package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsAllowMethods はBanking APIが公開するメソッドの一覧。
// 残高照会がGET、ログイン・入金・出金がPOSTのため、この2つに限定する。
const corsAllowMethods = "GET, POST, OPTIONS"

// CORS は許可されたオリジンからのクロスオリジンリクエストを受け付ける
// Ginミドルウェアを返す。ブラウザ上のクライアントがAuthorizationヘッダー
// 付きでBanking APIを呼び出せるようにするために使用する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Max-Age", "86400")
		}

		// プリフライトリクエストはここで完結させ、ハンドラには渡さない
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
