package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel           = "gemini-3-flash-preview"
	DefaultAssetRoot       = "lpc-char-gen/spritesheets" // LPC素材のルートディレクトリ
	DefaultOutputDir       = "generated_sprites"         // generate コマンドの保存先
	DefaultBatchDir        = "char_x1000"                // batch / ask コマンドの保存先
	DefaultBatchCount      = 1000
	DefaultWorkers         = 4
	DefaultRateLimit       = 2 * time.Second // 言語モデル呼び出しの流量制限間隔
	DefaultGeminiMaxTokens = 150
	DefaultCacheExpiration = 5 * time.Minute // デコード済みレイヤーキャッシュのTTL
	CacheCleanupInterval   = 15 * time.Minute
)

// defaultAnimations は生成対象のアニメーション一式です。
// idle/walk/sit の3種がすべての衣装カテゴリでスプライトを持つのだ。
var defaultAnimations = []string{"idle", "walk", "sit"}

// Animations は生成対象アニメーションのコピーを返します。
// 呼び出し元が並びを変えても既定値へ波及しないようにするのだ。
func Animations() []string {
	out := make([]string, len(defaultAnimations))
	copy(out, defaultAnimations)
	return out
}

// Config はアプリケーション全体の環境設定（APIキーや素材の所在）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	AssetRoot    string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		AssetRoot:    envutil.GetEnv("SPRITE_ASSET_ROOT", DefaultAssetRoot),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// キャラクター属性関連 (generate)
	Gender    string // --gender
	Skin      string // --skin
	Hair      string // --hair
	HairStyle string // --hair-style: 空なら抽選
	Shirt     string // --shirt
	Legs      string // --legs
	Shoes     string // --shoes
	LegType   string // --leg-type: 女性のみ有効、空なら抽選

	// 出力関連
	OutputDir    string // --output-dir
	WardrobeFile string // --wardrobe: ワードローブ定義YAMLの差し替え

	// バッチ実行関連
	Count   int   // --count
	Workers int   // --workers
	Seed    int64 // --seed: 再現可能な生成のためのベースシード

	// 言語モデル関連 (ask)
	Question  string // --question
	PromptDir string // --prompt-dir: プロンプト断片の差し替えディレクトリ
	AIModel   string // --model
}
