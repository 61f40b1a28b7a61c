package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/domain"
)

// BatchResult はバッチ全体の集計です。
type BatchResult struct {
	Full      int   // 全アニメーションが合成できたキャラクター数
	Partial   int   // 一部のアニメーションだけ合成できたキャラクター数
	Failed    int   // 1枚も生成できなかった、またはエラーになったキャラクター数
	FailedIDs []int // 完全成功でなかったキャラクターID（ID昇順）
}

// BatchRunner は複数キャラクターをワーカープールで並列生成します。
// 各キャラクターの仕事は独立で、出力先も互いに素なのだ。
type BatchRunner struct {
	character *CharacterRunner
	palette   domain.Palette
	count     int
	workers   int
	baseSeed  int64
	outputDir string
}

// NewBatchRunner は BatchRunner を生成するのだ。
func NewBatchRunner(character *CharacterRunner, palette domain.Palette, count, workers int, baseSeed int64, outputDir string) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{
		character: character,
		palette:   palette,
		count:     count,
		workers:   workers,
		baseSeed:  baseSeed,
		outputDir: outputDir,
	}
}

// Run は ID 1..count のキャラクターを生成して集計を返します。
// 各キャラクターのシードはベースシードとIDから決定論的に導出されるため、
// ワーカーの完了順に関係なく同じ入力からは同じ出力が得られるのだ。
// 個別キャラクターの失敗は記録して続行し、集計はID順の走査で確定させる。
func (br *BatchRunner) Run(ctx context.Context) (BatchResult, error) {
	slog.Info("バッチ生成を開始するのだ",
		"count", br.count, "workers", br.workers, "seed", br.baseSeed, "output", br.outputDir)

	results := make([]CharacterResult, br.count)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(br.workers)

	for i := 1; i <= br.count; i++ {
		id := i
		eg.Go(func() error {
			results[id-1] = br.runOne(egCtx, id)
			// キャラクター単位の失敗ではプールを止めない。キャンセルだけ伝播するのだ。
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return BatchResult{}, err
	}

	// 完了順に依存しない決定論的な集計: results をID昇順に走査する
	var batch BatchResult
	for _, r := range results {
		switch {
		case r.FullSuccess():
			batch.Full++
		case r.Err == nil && r.Composited > 0:
			batch.Partial++
			batch.FailedIDs = append(batch.FailedIDs, r.ID)
		default:
			batch.Failed++
			batch.FailedIDs = append(batch.FailedIDs, r.ID)
		}
	}

	slog.Info("バッチ生成が完了したのだ",
		"full", batch.Full, "partial", batch.Partial, "failed", batch.Failed)
	return batch, nil
}

// runOne はキャラクター1体を生成します。想定外の panic もここで受け止めて
// キャラクター単位の失敗として記録し、バッチ全体は継続させるのだ。
func (br *BatchRunner) runOne(ctx context.Context, id int) (result CharacterResult) {
	defer func() {
		if r := recover(); r != nil {
			result = CharacterResult{ID: id, Err: fmt.Errorf("キャラクター生成中に panic したのだ: %v", r)}
			slog.Error("キャラクター生成が異常終了したのだ", "id", id, "panic", r)
		}
	}()

	rng := rand.New(rand.NewSource(domain.SeedForCharacter(br.baseSeed, id)))
	char := domain.NewRandomCharacter(id, rng, br.palette)

	dir, err := asset.CharacterDir(br.outputDir, id)
	if err != nil {
		return CharacterResult{ID: id, Err: err}
	}

	result = br.character.RunCharacter(ctx, char, dir)
	if result.Err != nil {
		slog.Error("キャラクター生成に失敗したのだ", "id", id, "error", result.Err)
	} else if !result.FullSuccess() {
		slog.Warn("一部のアニメーションだけ生成できたのだ",
			"id", id, "composited", result.Composited, "total", result.Animations)
	}
	return result
}
