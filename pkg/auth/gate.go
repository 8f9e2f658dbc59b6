package auth

import (
	"net/http"
	"strings"
)

// Identity は認証に成功したリクエストの識別情報。
// リクエストの処理中のみ保持され、永続化されない。
type Identity struct {
	// Subject は認証済みユーザーの識別子（ユーザー名）。
	Subject string
	// Credential は認証に使用された生のクレデンシャル。
	Credential string
}

// Kind は認証・検証失敗の分類。
type Kind int

const (
	// KindMissingCredential はAuthorizationヘッダーが存在しない失敗。
	KindMissingCredential Kind = iota + 1
	// KindMalformedCredential はAuthorizationヘッダーの形式が不正な失敗。
	KindMalformedCredential
	// KindInvalidOrExpiredCredential は署名付きトークンの検証失敗（署名不正または期限切れ）。
	KindInvalidOrExpiredCredential
	// KindInvalidCredential は固定シークレットの不一致による失敗。
	KindInvalidCredential
	// KindMissingParameters はログイン時のユーザー名・パスワード欠落による失敗。
	KindMissingParameters
	// KindInvalidCredentials はログイン時のユーザー名・パスワード不一致による失敗。
	KindInvalidCredentials
)

// HTTPStatus は失敗分類に対応するHTTPステータスコードを返す。
// ヘッダーの形式不備はクライアントエラー（401）、クレデンシャルの
// 内容不正は認可拒否（403）として区別する。
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMissingCredential, KindMalformedCredential:
		return http.StatusUnauthorized
	case KindInvalidOrExpiredCredential, KindInvalidCredential:
		return http.StatusForbidden
	case KindMissingParameters:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Rejection は認証・検証の失敗結果。
// 失敗の原因となったクレデンシャルは含めない。
type Rejection struct {
	// Kind は失敗の分類。
	Kind Kind
	// Message は呼び出し元に返す失敗理由。
	Message string
}

// Error はerrorインターフェースを実装する。
func (r *Rejection) Error() string {
	return r.Message
}

// Gate はリクエストのAuthorizationヘッダーを検証する認証ゲート。
// 実装は署名付きトークン方式（SignedTokenGate）と
// 固定シークレット方式（StaticSecretGate）の2種類。
type Gate interface {
	// Authenticate はAuthorizationヘッダー値を検証し、
	// 認証済みアイデンティティまたはRejectionを返す。
	Authenticate(authHeader string) (Identity, *Rejection)
}

// extractBearer はAuthorizationヘッダーからBearerクレデンシャルを抽出する。
// ヘッダーは空白区切りでちょうど2要素、先頭が "Bearer" でなければならない。
// クレデンシャルの内容比較はここでは行わない。
func extractBearer(authHeader string) (string, *Rejection) {
	if authHeader == "" {
		return "", &Rejection{
			Kind:    KindMissingCredential,
			Message: "Bearerトークンが指定されていません",
		}
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", &Rejection{
			Kind:    KindMalformedCredential,
			Message: "Authorizationヘッダーの形式が不正です（Bearer <token> 形式で指定してください）",
		}
	}
	return parts[1], nil
}

// staticSubject は固定シークレット認証時に付与する固定のサブジェクト。
const staticSubject = "bearer"

// StaticSecretGate は固定の共有シークレットとの完全一致でクレデンシャルを
// 検証する認証ゲート。トークンの発行は行わない。
type StaticSecretGate struct {
	// Secret は比較対象となる共有シークレット。
	Secret string
}

// Authenticate はAuthorizationヘッダー値を固定シークレットと比較して検証する。
func (g *StaticSecretGate) Authenticate(authHeader string) (Identity, *Rejection) {
	credential, rejection := extractBearer(authHeader)
	if rejection != nil {
		return Identity{}, rejection
	}

	if credential != g.Secret {
		return Identity{}, &Rejection{
			Kind:    KindInvalidCredential,
			Message: "Bearerトークンが一致しません",
		}
	}
	return Identity{Subject: staticSubject, Credential: credential}, nil
}
