// Package auth はBearerトークンによる認証ゲートを提供する。
//
// Authorizationヘッダーからクレデンシャルを抽出し、署名付きトークン
// （HS256 JWT）または固定の共有シークレットのいずれかで検証する。
// 検証結果は認証済みアイデンティティか、分類付きのRejectionとして返す。
// ゲートは副作用を持たず、共有状態を一切変更しない。
package auth
