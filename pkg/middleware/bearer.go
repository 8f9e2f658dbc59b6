package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nao1215/bankgate/pkg/auth"
)

// contextKeyUsername はGinコンテキストに認証済みユーザー名を格納するキー。
const contextKeyUsername = "username"

// contextKeyCredential はGinコンテキストに検証済みクレデンシャルを格納するキー。
const contextKeyCredential = "credential"

// BearerAuth は認証ゲートでBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "username" と "credential" を設定する。
// 失敗した場合はRejectionの分類に対応するステータスコードで中断する。
func BearerAuth(gate auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, rejection := gate.Authenticate(c.GetHeader("Authorization"))
		if rejection != nil {
			c.AbortWithStatusJSON(rejection.Kind.HTTPStatus(), gin.H{
				"error": rejection.Message,
			})
			return
		}

		c.Set(contextKeyUsername, identity.Subject)
		c.Set(contextKeyCredential, identity.Credential)
		c.Next()
	}
}

// GetUsername はGinコンテキストから認証済みユーザー名を取得する。
// BearerAuthミドルウェアが事前に適用されている必要がある。
func GetUsername(c *gin.Context) string {
	username, _ := c.Get(contextKeyUsername)
	if name, ok := username.(string); ok {
		return name
	}
	return ""
}

// GetCredential はGinコンテキストから検証済みクレデンシャルを取得する。
// BearerAuthミドルウェアが事前に適用されている必要がある。
func GetCredential(c *gin.Context) string {
	credential, _ := c.Get(contextKeyCredential)
	if cred, ok := credential.(string); ok {
		return cred
	}
	return ""
}
