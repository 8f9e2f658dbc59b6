// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// 認証ゲートによるBearerトークン検証、リクエストログ、パニックリカバリ、
// CORS設定など、サービス全体で共通して使用するミドルウェアを含む。
package middleware
