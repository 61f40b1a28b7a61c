package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"

	"github.com/shouni/go-sprite-kit/internal/builder"
	"github.com/shouni/go-sprite-kit/internal/config"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/wardrobe"
)

// ExecuteGenerate は CLI フラグで指定された1体のキャラクターについて、
// 全アニメーションのスプライトを生成するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	characterRunner, err := builder.BuildCharacterRunner(appCtx)
	if err != nil {
		return fmt.Errorf("CharacterRunnerの構築に失敗したのだ: %w", err)
	}

	opts := cfg.Options
	gender := domain.Gender(opts.Gender)
	if !gender.Valid() {
		return fmt.Errorf("性別は male か female を指定してほしいのだ: %q", opts.Gender)
	}

	// レッグタイプ指定は女性のみ有効。男性は常に pants に固定されるのだ。
	legType := domain.LegType(opts.LegType)
	if gender == domain.GenderMale {
		legType = ""
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	single, err := characterRunner.RunSingle(ctx, wardrobe.Request{
		Gender:     gender,
		SkinColor:  opts.Skin,
		HairColor:  opts.Hair,
		ShirtColor: opts.Shirt,
		LegColor:   opts.Legs,
		ShoeColor:  opts.Shoes,
		LegType:    legType,
		HairStyle:  opts.HairStyle,
	}, rng, opts.OutputDir)
	if err != nil {
		return err
	}

	if len(single.Generated) == 0 {
		return fmt.Errorf("1枚もスプライトを生成できなかったのだ")
	}

	slog.Info("キャラクター生成が完了したのだ",
		"generated", len(single.Generated),
		"hair_style", single.HairStyle,
		"leg_type", single.LegType)
	return nil
}

// ExecuteBatch は指定数のキャラクターをワーカープールで一括生成するのだ。
func ExecuteBatch(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	batchRunner, err := builder.BuildBatchRunner(appCtx)
	if err != nil {
		return fmt.Errorf("BatchRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := batchRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("バッチ生成中にエラーが発生したのだ: %w", err)
	}

	// 全キャラクターの完全成功だけを成功扱いにするのだ
	if result.Full != cfg.Options.Count {
		return fmt.Errorf("完全に生成できたのは %d/%d 体なのだ（失敗ID: %v）",
			result.Full, cfg.Options.Count, truncateIDs(result.FailedIDs, 10))
	}
	return nil
}

// ExecuteAsk は生成済みキャラクター全員に質問を投げ、回答を保存・集計するのだ。
func ExecuteAsk(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	askRunner, err := builder.BuildAskRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("AskRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := askRunner.Run(ctx, cfg.Options.Question, cfg.Options.Count)
	if err != nil {
		return err
	}

	if result.Yes+result.No == 0 {
		return fmt.Errorf("1体からも回答を得られなかったのだ（失敗: %d）", result.Failed)
	}

	slog.Info("集計結果なのだ", "yes", result.Yes, "no", result.No, "failed", result.Failed)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、
// アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, reader, writer)
	return &appCtx, nil
}

func truncateIDs(ids []int, max int) []int {
	if len(ids) <= max {
		return ids
	}
	return ids[:max]
}
