// Package banking はBearerトークン認証付きBanking APIの内部実装を提供する。
//
// リクエストはまず認証ゲート（署名付きトークンまたは固定シークレット）を
// 通過し、成功した場合のみ共有残高への参照・入金・出金操作に到達する。
// ゲートと残高台帳は独立しており、リクエストパイプラインでのみ合成される。
package banking
