package builder

import (
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-sprite-kit/internal/config"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、素材ルートなど）。
	Options config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Reader  remoteio.InputReader   // Readerは、説明ファイル等の読み込みに使用する入力元です。
	Writer  remoteio.OutputWriter  // Writerは、生成された成果物を保存するための出力先です。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config, reader remoteio.InputReader, writer remoteio.OutputWriter) AppContext {
	return AppContext{
		Config:  cfg,
		Options: cfg.Options,
		Reader:  reader,
		Writer:  writer,
	}
}
