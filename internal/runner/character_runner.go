package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/domain"
	"github.com/shouni/go-sprite-kit/pkg/sprite"
	"github.com/shouni/go-sprite-kit/pkg/wardrobe"
)

// LayerResolver はキャラクター属性からレイヤーパス列を導出するインターフェースです。
type LayerResolver interface {
	Resolve(req wardrobe.Request, rng *rand.Rand) (wardrobe.Resolution, error)
}

// SpriteCompositor はレイヤー列を1枚のPNGへ合成するインターフェースです。
type SpriteCompositor interface {
	Composite(ctx context.Context, animation string, layers []string, outputPath string) (*sprite.Result, error)
}

// CharacterResult はキャラクター1体分の生成結果です。
type CharacterResult struct {
	ID          int
	Description string
	Animations  int   // 試行したアニメーション数
	Composited  int   // 合成に成功したアニメーション数
	Err         error // キャラクター単位の致命的エラー（個別アニメーションの失敗は含まない）
}

// FullSuccess は全アニメーションの合成に成功したかを返すのだ。
func (r CharacterResult) FullSuccess() bool {
	return r.Err == nil && r.Animations > 0 && r.Composited == r.Animations
}

// SingleResult は generate コマンド（1体のみ）の結果です。
type SingleResult struct {
	Generated []string // 書き出せたスプライトのパス
	LegType   domain.LegType
	HairStyle string
}

// CharacterRunner は1体のキャラクターについて全アニメーションの解決・合成と
// 説明/属性ファイルの書き出しを担当します。
type CharacterRunner struct {
	resolver   LayerResolver
	compositor SpriteCompositor
	writer     remoteio.OutputWriter
	animations []string
}

// NewCharacterRunner は依存関係を注入して CharacterRunner を生成するのだ。
func NewCharacterRunner(resolver LayerResolver, compositor SpriteCompositor, writer remoteio.OutputWriter, animations []string) *CharacterRunner {
	return &CharacterRunner{
		resolver:   resolver,
		compositor: compositor,
		writer:     writer,
		animations: animations,
	}
}

// RunCharacter は抽選済みのキャラクター1体を outDir へ書き出します。
// 個別アニメーションの合成失敗は記録して続行し、説明・属性ファイルの
// 書き込み失敗だけをキャラクター単位の失敗として扱うのだ。
func (cr *CharacterRunner) RunCharacter(ctx context.Context, char domain.Character, outDir string) CharacterResult {
	result := CharacterResult{
		ID:          char.ID,
		Description: char.Description,
		Animations:  len(cr.animations),
	}

	for _, animation := range cr.animations {
		res, err := cr.resolver.Resolve(wardrobe.Request{
			Animation:  animation,
			Gender:     char.Gender,
			SkinColor:  char.SkinColor,
			HairColor:  char.HairColor,
			ShirtColor: char.ShirtColor,
			LegColor:   char.LegColor,
			ShoeColor:  char.ShoeColor,
			LegType:    char.LegType,
			HairStyle:  char.HairStyle,
		}, nil) // 属性はすべて確定済みなので乱数源は不要なのだ
		if err != nil {
			result.Err = fmt.Errorf("レイヤー解決に失敗したのだ: %w", err)
			return result
		}

		outputPath, err := asset.ResolveOutputPath(outDir, asset.AnimationFileName(animation))
		if err != nil {
			result.Err = err
			return result
		}

		if _, err := cr.compositor.Composite(ctx, animation, res.Layers, outputPath); err != nil {
			if ctx.Err() != nil {
				result.Err = ctx.Err()
				return result
			}
			// 部分失敗: このアニメーションだけ諦めて次へ進むのだ
			slog.Warn("アニメーションの合成に失敗したのだ",
				"character", char.String(), "animation", animation, "error", err)
			continue
		}
		result.Composited++
	}

	if err := cr.writeCharacterFiles(ctx, char, outDir); err != nil {
		result.Err = err
	}
	return result
}

// RunSingle は CLI フラグ由来の属性で1体だけ生成します。
// レッグタイプとヘアスタイルが未指定なら最初の解決時に抽選され、
// 以降のアニメーションでも同じ値が使い回されるのだ。
func (cr *CharacterRunner) RunSingle(ctx context.Context, req wardrobe.Request, rng *rand.Rand, outDir string) (SingleResult, error) {
	single := SingleResult{}

	for _, animation := range cr.animations {
		req.Animation = animation
		res, err := cr.resolver.Resolve(req, rng)
		if err != nil {
			return single, fmt.Errorf("レイヤー解決に失敗したのだ: %w", err)
		}

		// 抽選結果を以降のアニメーションへ固定するのだ
		req.LegType = res.LegType
		req.HairStyle = res.HairStyle
		single.LegType = res.LegType
		single.HairStyle = res.HairStyle

		fileName := fmt.Sprintf("character_%s_%s.png", req.Gender, animation)
		outputPath, err := asset.ResolveOutputPath(outDir, fileName)
		if err != nil {
			return single, err
		}

		result, err := cr.compositor.Composite(ctx, animation, res.Layers, outputPath)
		if err != nil {
			if ctx.Err() != nil {
				return single, ctx.Err()
			}
			if errors.Is(err, sprite.ErrNoLayers) {
				slog.Warn("スプライトを生成できなかったのだ", "animation", animation, "error", err)
				continue
			}
			return single, err
		}

		slog.Info("スプライトを保存したのだ",
			"animation", animation, "path", result.OutputPath,
			"size", result.Size, "layers", result.LayersLoaded)
		single.Generated = append(single.Generated, result.OutputPath)
	}

	return single, nil
}

// writeCharacterFiles は description.txt と character_data.json を書き出すのだ。
func (cr *CharacterRunner) writeCharacterFiles(ctx context.Context, char domain.Character, outDir string) error {
	descPath, err := asset.ResolveOutputPath(outDir, asset.DescriptionFileName)
	if err != nil {
		return err
	}
	if err := cr.writer.Write(ctx, descPath, strings.NewReader(char.Description), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("説明ファイルの書き込みに失敗したのだ: %w", err)
	}

	data, err := char.MarshalData()
	if err != nil {
		return err
	}
	dataPath, err := asset.ResolveOutputPath(outDir, asset.CharacterDataFileName)
	if err != nil {
		return err
	}
	if err := cr.writer.Write(ctx, dataPath, strings.NewReader(string(data)), "application/json"); err != nil {
		return fmt.Errorf("属性ファイルの書き込みに失敗したのだ: %w", err)
	}
	return nil
}
