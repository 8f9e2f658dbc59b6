package banking

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/bankgate/internal/ledger"
	"github.com/nao1215/bankgate/pkg/auth"
	"github.com/nao1215/bankgate/pkg/middleware"
)

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Username はユーザー名。
	Username string `json:"username"`
	// Password はパスワード。
	Password string `json:"password"`
}

// loginResponse はログイン成功時のJSONレスポンス構造。
type loginResponse struct {
	// Message は処理結果のメッセージ。
	Message string `json:"message"`
	// Token は発行された署名付きトークン。
	Token string `json:"token"`
	// ExpiresIn はトークンの有効期間（秒）。
	ExpiresIn int `json:"expiresIn"`
}

// amountRequest は入出金リクエストのJSON構造。
type amountRequest struct {
	// Amount は入出金額。
	Amount float64 `json:"amount"`
}

// balanceResponse は残高照会のJSONレスポンス構造。
type balanceResponse struct {
	// Message は処理結果のメッセージ。
	Message string `json:"message"`
	// Username は認証済みユーザーのユーザー名。
	Username string `json:"username"`
	// Balance は現在の残高。
	Balance float64 `json:"balance"`
	// Currency は通貨単位。
	Currency string `json:"currency"`
}

// depositResponse は入金成功時のJSONレスポンス構造。
type depositResponse struct {
	// Message は処理結果のメッセージ。
	Message string `json:"message"`
	// Username は認証済みユーザーのユーザー名。
	Username string `json:"username"`
	// DepositAmount は入金額。
	DepositAmount float64 `json:"depositAmount"`
	// NewBalance は入金後の残高。
	NewBalance float64 `json:"newBalance"`
	// Currency は通貨単位。
	Currency string `json:"currency"`
}

// withdrawResponse は出金成功時のJSONレスポンス構造。
type withdrawResponse struct {
	// Message は処理結果のメッセージ。
	Message string `json:"message"`
	// Username は認証済みユーザーのユーザー名。
	Username string `json:"username"`
	// WithdrawAmount は出金額。
	WithdrawAmount float64 `json:"withdrawAmount"`
	// NewBalance は出金後の残高。
	NewBalance float64 `json:"newBalance"`
	// Currency は通貨単位。
	Currency string `json:"currency"`
}

// routeResponse は/publicと/protectedのJSONレスポンス構造。
type routeResponse struct {
	// Message は処理結果のメッセージ。
	Message string `json:"message"`
	// Endpoint はエンドポイントのパス。
	Endpoint string `json:"endpoint"`
	// RequiresAuth は認証が必要なルートかどうか。
	RequiresAuth bool `json:"requiresAuth"`
	// Token は検証済みのトークン（/protectedのみ）。
	Token string `json:"token,omitempty"`
}

// handleLogin はログインを処理するハンドラを返す。
// ユーザー名とパスワードを検証し、1時間有効な署名付きトークンを発行する。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		token, err := s.issuer.Issue(req.Username, req.Password)
		if err != nil {
			var rejection *auth.Rejection
			if errors.As(err, &rejection) {
				c.JSON(rejection.Kind.HTTPStatus(), gin.H{"error": rejection.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークンの発行に失敗しました"})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, loginResponse{
			Message:   "ログインに成功しました",
			Token:     token,
			ExpiresIn: int(auth.TokenValidity.Seconds()),
		})
	}
}

// handleBalance は残高照会を処理するハンドラを返す。
func (s *Server) handleBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, balanceResponse{
			Message:  "残高を取得しました",
			Username: middleware.GetUsername(c),
			Balance:  s.ledger.Balance(),
			Currency: currency,
		})
	}
}

// handleDeposit は入金を処理するハンドラを返す。
func (s *Server) handleDeposit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req amountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ledger.ErrInvalidAmount.Error()})
			return
		}

		newBalance, err := s.ledger.Deposit(req.Amount)
		if err != nil {
			if errors.Is(err, ledger.ErrInvalidAmount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "入金処理に失敗しました"})
			log.Printf("入金エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, depositResponse{
			Message:       "入金に成功しました",
			Username:      middleware.GetUsername(c),
			DepositAmount: req.Amount,
			NewBalance:    newBalance,
			Currency:      currency,
		})
	}
}

// handleWithdraw は出金を処理するハンドラを返す。
// 残高を超える出金は不足額付きの400エラーで失敗し、残高は変化しない。
func (s *Server) handleWithdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req amountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ledger.ErrInvalidAmount.Error()})
			return
		}

		newBalance, err := s.ledger.Withdraw(req.Amount)
		if err != nil {
			var insufficient *ledger.InsufficientFundsError
			switch {
			case errors.As(err, &insufficient):
				c.JSON(http.StatusBadRequest, gin.H{
					"error":           "残高が不足しています",
					"currentBalance":  insufficient.Balance,
					"requestedAmount": insufficient.Requested,
					"shortfall":       insufficient.Shortfall(),
				})
			case errors.Is(err, ledger.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "出金処理に失敗しました"})
				log.Printf("出金エラー: %v", err)
			}
			return
		}

		c.JSON(http.StatusOK, withdrawResponse{
			Message:        "出金に成功しました",
			Username:       middleware.GetUsername(c),
			WithdrawAmount: req.Amount,
			NewBalance:     newBalance,
			Currency:       currency,
		})
	}
}

// handlePublic は認証不要の公開ルートを処理するハンドラを返す。
func (s *Server) handlePublic() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, routeResponse{
			Message:      "誰でもアクセスできる公開ルートです",
			Endpoint:     "/public",
			RequiresAuth: false,
		})
	}
}

// handleProtected は固定シークレットで保護されたルートを処理するハンドラを返す。
// 検証済みのトークンをそのままレスポンスに含めて返す。
func (s *Server) handleProtected() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, routeResponse{
			Message:      "有効なBearerトークンで保護されたルートにアクセスしました",
			Endpoint:     "/protected",
			RequiresAuth: true,
			Token:        middleware.GetCredential(c),
		})
	}
}
