package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、多数のキャラクターを一括生成するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "キャラクターを大量に一括生成しますなのだ。",
	Long: `属性をランダムに抽選したキャラクターを指定数だけ生成するのだ。
各キャラクターは専用ディレクトリに全アニメーションのスプライトと
説明ファイル・属性ファイルを持つのだよ。シードを固定すれば再現できるのだ。`,
	RunE: batchCommand,
}

func batchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Count < 1 {
		return fmt.Errorf("--count は1以上を指定してほしいのだ")
	}

	// batch コマンド固有のデフォルト保存先を設定するのだ
	if !cmd.Flags().Changed("output-dir") {
		opts.OutputDir = config.DefaultBatchDir
	}

	cfg := loadConfig()

	slog.Info("バッチ生成パイプラインを起動するのだ！",
		"count", opts.Count,
		"workers", opts.Workers,
		"seed", opts.Seed,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteBatch(ctx, cfg); err != nil {
		return fmt.Errorf("バッチ生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべてのキャラクターが生成できたのだ！")
	return nil
}
