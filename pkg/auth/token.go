package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims は署名付きトークンのクレーム（ペイロード）を表す。
type Claims struct {
	jwt.RegisteredClaims
	// Username は認証済みユーザーのユーザー名。
	Username string `json:"username"`
}

// TokenValidity は発行する署名付きトークンの有効期間。
const TokenValidity = time.Hour

// tokenIssuer は発行するトークンのissクレームに設定する値。
const tokenIssuer = "bankgate"

// SignedTokenGate はHS256で署名されたJWTを検証する認証ゲート。
type SignedTokenGate struct {
	// Secret はトークン署名の検証に使用する共有秘密鍵。
	Secret string
}

// Authenticate はAuthorizationヘッダー値から署名付きトークンを取り出し、
// 署名と有効期限を検証する。成功した場合は発行時に埋め込まれた
// サブジェクトを持つアイデンティティを返す。
func (g *SignedTokenGate) Authenticate(authHeader string) (Identity, *Rejection) {
	credential, rejection := extractBearer(authHeader)
	if rejection != nil {
		return Identity{}, rejection
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(_ *jwt.Token) (any, error) {
		return []byte(g.Secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, &Rejection{
			Kind:    KindInvalidOrExpiredCredential,
			Message: "トークンが無効または期限切れです",
		}
	}
	return Identity{Subject: claims.Username, Credential: credential}, nil
}

// Issuer はログイン情報を検証し、署名付きトークンを発行する。
// 有効なユーザー名・パスワードの組は設定でただ1組与えられる。
type Issuer struct {
	// Secret はトークン署名用の共有秘密鍵。
	Secret string
	// ValidUsername は有効なユーザー名。
	ValidUsername string
	// ValidPassword は有効なパスワード。
	ValidPassword string
}

// Issue はユーザー名とパスワードを検証し、TokenValidityの間有効な
// 署名付きトークンを発行する。分類済みの失敗は*Rejectionとして返す。
func (i *Issuer) Issue(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", &Rejection{
			Kind:    KindMissingParameters,
			Message: "ユーザー名とパスワードは必須です",
		}
	}
	if username != i.ValidUsername || password != i.ValidPassword {
		return "", &Rejection{
			Kind:    KindInvalidCredentials,
			Message: "ユーザー名またはパスワードが正しくありません",
		}
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			ID:        uuid.New().String(),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.Secret))
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}
