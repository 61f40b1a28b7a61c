package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// askCmd は、生成済みキャラクター全員に質問を投げて回答を集計するのだ。
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "生成済みキャラクターに質問して Yes/No を集計しますなのだ。",
	Long: `各キャラクターの説明文を言語モデルへのプロンプトに組み込み、
キャラクターになりきった回答を得て Yes/No に分類するのだ。
完全な回答と分類結果は各キャラクターのディレクトリに保存されるのだよ。`,
	PreRunE: askPreRunE,
	RunE:    askCommand,
}

// askPreRunE は言語モデル利用に必要な環境を確認するのだ。
// スプライト生成はオフラインで動くため、APIキーの必須チェックはこのコマンドだけなのだ。
func askPreRunE(cmd *cobra.Command, args []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

func askCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Question == "" {
		return fmt.Errorf("質問（--question）を指定してほしいのだ")
	}

	// ask は batch の成果物ディレクトリを読むのだ
	if !cmd.Flags().Changed("output-dir") {
		opts.OutputDir = config.DefaultBatchDir
	}

	cfg := loadConfig()
	cfg.GeminiModel = opts.AIModel

	slog.Info("質問ループを起動するのだ！",
		"count", opts.Count,
		"model", cfg.GeminiModel,
		"base_dir", opts.OutputDir)

	if err := pipeline.ExecuteAsk(ctx, cfg); err != nil {
		return fmt.Errorf("質問ループ中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての回答を集計できたのだ！")
	return nil
}
