package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、フラグで指定した1体のキャラクタースプライトを生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "1体のキャラクタースプライトを生成しますなのだ。",
	Long: `性別と各部位の色を指定して、LPC素材のレイヤーを重ね合わせた
キャラクターのスプライトシートをアニメーションごとに生成するのだ。
レッグタイプとヘアスタイルを省略すると抽選されるのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// generate コマンド固有のデフォルト保存先を設定するのだ
	if !cmd.Flags().Changed("output-dir") {
		opts.OutputDir = config.DefaultOutputDir
	}

	cfg := loadConfig()

	slog.Info("スプライト生成を開始するのだ！",
		"gender", opts.Gender,
		"skin", opts.Skin,
		"hair", opts.Hair,
		"shirt", opts.Shirt,
		"legs", opts.Legs,
		"shoes", opts.Shoes,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteGenerate(ctx, cfg); err != nil {
		return fmt.Errorf("スプライト生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
