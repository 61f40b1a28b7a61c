package cmd

import (
	"github.com/joho/godotenv"
	"github.com/shouni/go-sprite-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts はCLIフラグの値を集約する実行時パラメータなのだ。
var opts config.GenerateOptions

// assetRoot は --asset-root フラグの値。空なら環境変数/既定値を使うのだ。
var assetRoot string

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 素材・出力関連 ---
	rootCmd.PersistentFlags().StringVar(&assetRoot, "asset-root", "", "LPC素材のルートディレクトリ（既定は SPRITE_ASSET_ROOT か "+config.DefaultAssetRoot+" なのだ）。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.WardrobeFile, "wardrobe", "", "ワードローブ定義YAMLを差し替えるパスなのだ。")

	// --- 再現性・並列度 ---
	rootCmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "抽選を再現可能にするベースシード（0なら時刻から採番するのだ）。")

	// --- キャラクター属性 (generate) ---
	generateCmd.Flags().StringVar(&opts.Gender, "gender", "male", "キャラクターの性別（male / female）なのだ。")
	generateCmd.Flags().StringVar(&opts.Skin, "skin", "light", "肌の色（light, amber, olive, taupe, bronze, brown, black など）なのだ。")
	generateCmd.Flags().StringVar(&opts.Hair, "hair", "dark_brown", "髪の色（dark_brown, blonde, black, red など）なのだ。")
	generateCmd.Flags().StringVar(&opts.HairStyle, "hair-style", "", "ヘアスタイル名（未指定なら性別別リストから抽選するのだ）。")
	generateCmd.Flags().StringVar(&opts.Shirt, "shirt", "white", "シャツの色（white, black, blue, red など）なのだ。")
	generateCmd.Flags().StringVar(&opts.Legs, "legs", "blue", "下半身の衣装の色なのだ。")
	generateCmd.Flags().StringVar(&opts.Shoes, "shoes", "black", "靴の色（black, brown, white など）なのだ。")
	generateCmd.Flags().StringVar(&opts.LegType, "leg-type", "", "女性のみ: pants / skirt / leggings（未指定なら抽選するのだ）。")

	// --- バッチ実行 (batch) / 質問 (ask) ---
	batchCmd.Flags().IntVarP(&opts.Count, "count", "n", config.DefaultBatchCount, "生成するキャラクター数なのだ。")
	batchCmd.Flags().IntVar(&opts.Workers, "workers", config.DefaultWorkers, "並列に動かすワーカー数なのだ。")
	askCmd.Flags().IntVarP(&opts.Count, "count", "n", config.DefaultBatchCount, "質問を投げるキャラクター数なのだ。")
	askCmd.Flags().StringVarP(&opts.Question, "question", "q", "", "キャラクターに投げかける質問なのだ。")
	askCmd.Flags().StringVar(&opts.PromptDir, "prompt-dir", "", "プロンプト断片（introduction.txt / pre.txt / post.txt）のディレクトリなのだ。")
	askCmd.Flags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
}

// preRunAppE は、コマンド実行前の共通準備を行うのだ。
// .env があれば読み込むが、無くてもエラーにはしないのだよ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"go-sprite-kit",
		addAppFlags,
		preRunAppE,
		generateCmd,
		batchCmd,
		askCmd,
	)
}

// loadConfig は環境変数とフラグから設定を組み立てる共通処理なのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if assetRoot != "" {
		cfg.AssetRoot = assetRoot
	}
	cfg.Options = opts
	return cfg
}
