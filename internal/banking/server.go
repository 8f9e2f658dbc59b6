package banking

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/bankgate/internal/ledger"
	"github.com/nao1215/bankgate/pkg/auth"
	"github.com/nao1215/bankgate/pkg/middleware"
)

// currency は残高の通貨単位。
const currency = "USD"

// defaultSeedBalance は初期残高のデフォルト値。
const defaultSeedBalance = 5000

// Config はBanking APIサービスの設定。
// すべての項目はプロセス起動時に一度だけ決定され、以後変更されない。
type Config struct {
	// SigningSecret は署名付きトークンの署名・検証に使用する秘密鍵。
	SigningSecret string
	// StaticSecret は/protectedルートで使用する固定の共有シークレット。
	StaticSecret string
	// ValidUsername はログイン可能な唯一のユーザー名。
	ValidUsername string
	// ValidPassword はログイン可能な唯一のパスワード。
	ValidPassword string
	// SeedBalance はプロセス起動時の初期残高。
	SeedBalance float64
}

// ConfigFromEnv は環境変数から設定を読み込む。
// 未設定の項目には開発用のデフォルト値を使用する。
func ConfigFromEnv() Config {
	seed := float64(defaultSeedBalance)
	if v := os.Getenv("SEED_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			seed = f
		}
	}

	return Config{
		SigningSecret: getEnvOr("JWT_SECRET", "dev-secret-key"),
		StaticSecret:  getEnvOr("STATIC_SECRET", "mysecrettoken"),
		ValidUsername: getEnvOr("VALID_USERNAME", "user"),
		ValidPassword: getEnvOr("VALID_PASSWORD", "pass"),
		SeedBalance:   seed,
	}
}

// Server はBanking APIサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// ledger はプロセス全体で共有される残高台帳。
	ledger *ledger.Ledger
	// issuer はログイン時の署名付きトークン発行器。
	issuer *auth.Issuer
	// signedGate は銀行系エンドポイントを保護する署名付きトークンゲート。
	signedGate *auth.SignedTokenGate
	// staticGate は/protectedルートを保護する固定シークレットゲート。
	staticGate *auth.StaticSecretGate
}

// NewServer は新しいBanking APIサーバーを生成する。
func NewServer(port string, cfg Config) *Server {
	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router: router,
		port:   port,
		ledger: ledger.New(cfg.SeedBalance),
		issuer: &auth.Issuer{
			Secret:        cfg.SigningSecret,
			ValidUsername: cfg.ValidUsername,
			ValidPassword: cfg.ValidPassword,
		},
		signedGate: &auth.SignedTokenGate{Secret: cfg.SigningSecret},
		staticGate: &auth.StaticSecretGate{Secret: cfg.StaticSecret},
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 認証不要の公開ルート
	s.router.POST("/login", s.handleLogin())
	s.router.GET("/public", s.handlePublic())

	// 署名付きトークンで保護された銀行系ルート
	account := s.router.Group("/")
	account.Use(middleware.BearerAuth(s.signedGate))
	{
		account.GET("/balance", s.handleBalance())
		account.POST("/deposit", s.handleDeposit())
		account.POST("/withdraw", s.handleWithdraw())
	}

	// 固定シークレットで保護されたルート
	protected := s.router.Group("/")
	protected.Use(middleware.BearerAuth(s.staticGate))
	{
		protected.GET("/protected", s.handleProtected())
	}

	// ヘルスチェック
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Banking APIサーバーは稼働中です",
		})
	})

	// 未定義エンドポイント
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "指定されたエンドポイントは存在しません",
			"path":    c.Request.URL.Path,
		})
	})
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
