// Banking APIサービスのエントリポイント。
// Bearerトークン認証（署名付きトークンと固定シークレットの2方式）と、
// 共有残高への入金・出金・照会エンドポイントを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/bankgate/internal/banking"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	cfg := banking.ConfigFromEnv()
	server := banking.NewServer(port, cfg)

	log.Printf("Banking APIサービスを起動します: :%s (初期残高: %.2f %s)", port, cfg.SeedBalance, "USD")
	if err := server.Run(); err != nil {
		log.Fatalf("Banking APIサービスの起動に失敗: %v", err)
	}
}
