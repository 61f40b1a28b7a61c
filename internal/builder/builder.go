package builder

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/internal/runner"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/prompt"
	"github.com/shouni/go-sprite-kit/pkg/sprite"
	"github.com/shouni/go-sprite-kit/pkg/wardrobe"
)

const defaultRateBurst = 2

// BuildCharacterRunner はスプライト生成を担当する Runner を構築します。
// ワードローブ定義は起動時に検証され、不整合があればここで失敗するのだ。
func BuildCharacterRunner(appCtx *AppContext) (*runner.CharacterRunner, error) {
	table, err := loadWardrobeTable(appCtx.Options.WardrobeFile)
	if err != nil {
		return nil, err
	}

	palette := domain.DefaultPalette()
	resolver := wardrobe.NewResolver(table, palette)

	// バッチ実行では同じ素材が何度も現れるため、デコード結果をキャッシュで共有するのだ
	imgCache := cache.New(config.DefaultCacheExpiration, config.CacheCleanupInterval)
	compositor := sprite.NewCompositor(appCtx.Config.AssetRoot, appCtx.Writer, imgCache)

	return runner.NewCharacterRunner(resolver, compositor, appCtx.Writer, config.Animations()), nil
}

// BuildBatchRunner はワーカープール付きのバッチ生成 Runner を構築します。
func BuildBatchRunner(appCtx *AppContext) (*runner.BatchRunner, error) {
	characterRunner, err := BuildCharacterRunner(appCtx)
	if err != nil {
		return nil, fmt.Errorf("CharacterRunnerの構築に失敗したのだ: %w", err)
	}

	opts := appCtx.Options
	return runner.NewBatchRunner(
		characterRunner,
		domain.DefaultPalette(),
		opts.Count,
		opts.Workers,
		opts.Seed,
		opts.OutputDir,
	), nil
}

// BuildAskRunner は言語モデルへの質問ループを担当する Runner を構築します。
func BuildAskRunner(ctx context.Context, appCtx *AppContext) (*runner.AskRunner, error) {
	aiClient, err := InitializeAIClient(ctx, appCtx.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	frags, err := loadFragments(appCtx.Options.PromptDir)
	if err != nil {
		return nil, err
	}

	return runner.NewAskRunner(
		aiClient,
		prompt.NewAssembler(frags),
		appCtx.Reader,
		appCtx.Writer,
		appCtx.Config.GeminiModel,
		rate.NewLimiter(rate.Every(config.DefaultRateLimit), defaultRateBurst),
		appCtx.Options.OutputDir,
	), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.8)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// loadWardrobeTable は --wardrobe が指定されていればそれを、
// 無ければ埋め込み済みの既定テーブルを返すのだ。
func loadWardrobeTable(path string) (wardrobe.Table, error) {
	if path != "" {
		return wardrobe.LoadTable(path)
	}
	return wardrobe.DefaultTable()
}

// loadFragments は --prompt-dir が指定されていればそれを、
// 無ければ埋め込み済みの既定断片を返すのだ。
func loadFragments(dir string) (prompt.Fragments, error) {
	if dir != "" {
		return prompt.LoadFragments(dir)
	}
	return prompt.DefaultFragments(), nil
}
