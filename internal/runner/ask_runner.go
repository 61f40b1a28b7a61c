package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-gemini-client/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"

	"github.com/shouni/go-sprite-kit/pkg/asset"
	"github.com/shouni/go-sprite-kit/pkg/prompt"
)

// AskResult は質問ループ全体の集計です。
type AskResult struct {
	Yes    int
	No     int
	Failed int // 言語モデル呼び出し等に失敗したキャラクター数
}

// AskRunner は生成済みキャラクターの説明文を使って言語モデルへ質問し、
// 返答を Yes/No に分類して各キャラクターのディレクトリへ保存します。
// モデル呼び出しにリトライは実装しない。失敗は記録して次へ進むのだ。
type AskRunner struct {
	aiClient  gemini.GenerativeModel
	assembler *prompt.Assembler
	reader    remoteio.InputReader
	writer    remoteio.OutputWriter
	model     string
	limiter   *rate.Limiter
	baseDir   string
}

// NewAskRunner は依存関係を注入して AskRunner を生成するのだ。
func NewAskRunner(
	aiClient gemini.GenerativeModel,
	assembler *prompt.Assembler,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	model string,
	limiter *rate.Limiter,
	baseDir string,
) *AskRunner {
	return &AskRunner{
		aiClient:  aiClient,
		assembler: assembler,
		reader:    reader,
		writer:    writer,
		model:     model,
		limiter:   limiter,
		baseDir:   baseDir,
	}
}

// Run は ID 1..count のキャラクターへ順番に質問を投げて集計を返します。
func (ar *AskRunner) Run(ctx context.Context, question string, count int) (AskResult, error) {
	slog.Info("キャラクターへの質問を開始するのだ",
		"count", count, "model", ar.model, "base_dir", ar.baseDir)

	var result AskResult
	for id := 1; id <= count; id++ {
		affirmative, err := ar.askOne(ctx, id, question)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			slog.Error("キャラクターへの質問に失敗したのだ", "id", id, "error", err)
			result.Failed++
			continue
		}

		if affirmative {
			result.Yes++
		} else {
			result.No++
		}
	}

	slog.Info("質問ループが完了したのだ",
		"yes", result.Yes, "no", result.No, "failed", result.Failed)
	return result, nil
}

// askOne はキャラクター1体との2段階のやり取りを実行します。
// 第1段階で自己紹介をさせ、その返答を文脈に含めた第2段階で質問するのだ。
func (ar *AskRunner) askOne(ctx context.Context, id int, question string) (bool, error) {
	dir, err := asset.CharacterDir(ar.baseDir, id)
	if err != nil {
		return false, err
	}

	description, err := ar.readDescription(ctx, dir)
	if err != nil {
		return false, err
	}

	if err := ar.limiter.Wait(ctx); err != nil {
		return false, err
	}
	opening, err := ar.aiClient.GenerateContent(ctx, ar.assembler.BuildOpening(description), ar.model)
	if err != nil {
		return false, fmt.Errorf("自己紹介の生成に失敗したのだ: %w", err)
	}

	if err := ar.limiter.Wait(ctx); err != nil {
		return false, err
	}
	followUp := ar.assembler.BuildFollowUp(description, opening.Text, question)
	reply, err := ar.aiClient.GenerateContent(ctx, followUp, ar.model)
	if err != nil {
		return false, fmt.Errorf("回答の生成に失敗したのだ: %w", err)
	}

	affirmative := prompt.Classify(reply.Text)
	if err := ar.writeAnswers(ctx, dir, reply.Text, affirmative); err != nil {
		return false, err
	}

	slog.Info("回答を分類したのだ", "id", id, "answer", prompt.ShortAnswer(affirmative))
	return affirmative, nil
}

func (ar *AskRunner) readDescription(ctx context.Context, dir string) (string, error) {
	descPath, err := asset.ResolveOutputPath(dir, asset.DescriptionFileName)
	if err != nil {
		return "", err
	}

	rc, err := ar.reader.Open(ctx, descPath)
	if err != nil {
		return "", fmt.Errorf("説明ファイル %s の読み込みに失敗したのだ: %w", descPath, err)
	}
	defer rc.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, rc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeAnswers は完全な返答と分類済みの Yes/No をサイドカーとして保存するのだ。
func (ar *AskRunner) writeAnswers(ctx context.Context, dir, reply string, affirmative bool) error {
	answerPath, err := asset.ResolveOutputPath(dir, asset.AnswerFileName)
	if err != nil {
		return err
	}
	if err := ar.writer.Write(ctx, answerPath, strings.NewReader(reply), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("回答ファイルの書き込みに失敗したのだ: %w", err)
	}

	shortPath, err := asset.ResolveOutputPath(dir, asset.ShortAnswerFileName)
	if err != nil {
		return err
	}
	short := prompt.ShortAnswer(affirmative)
	if err := ar.writer.Write(ctx, shortPath, strings.NewReader(short), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("短縮回答ファイルの書き込みに失敗したのだ: %w", err)
	}
	return nil
}
