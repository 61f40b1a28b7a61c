package wardrobe

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

//go:embed wardrobe.yml
var defaultTableYAML []byte

// Template はアセットへの相対パスのテンプレート文字列です。
// {gender} や {animation} のようなトークンを展開して最終パスになるのだ。
type Template string

// tokenRegex はテンプレート中の {token} をすべて抽出します
var tokenRegex = regexp.MustCompile(`\{[a-z_]+\}`)

// knownTokens はテンプレートで使用を許可するトークンの一覧なのだ。
var knownTokens = map[string]bool{
	"{gender}":        true,
	"{animation}":     true,
	"{skin_color}":    true,
	"{hair_color}":    true,
	"{hair_style}":    true,
	"{shirt_color}":   true,
	"{leg_color}":     true,
	"{shoe_color}":    true,
	"{leg_body_type}": true,
	"{eye_color}":     true,
}

// Expand はテンプレートのトークンを vars の値で置換したパスを返すのだ。
func (t Template) Expand(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(string(t))
}

// validate はテンプレートが既知のトークンだけを含むことを確認します。
func (t Template) validate() error {
	for _, tok := range tokenRegex.FindAllString(string(t), -1) {
		if !knownTokens[tok] {
			return fmt.Errorf("テンプレート %q に未知のトークン %q が含まれているのだ", t, tok)
		}
	}
	return nil
}

// LegRule は1つのレッグタイプに対するパス解決ポリシーです。
// 分岐はインラインの条件式ではなく、ここに名前付きで宣言されるのだ。
// 適用順: action_female → action → rest → all。どれにも該当しなければレイヤーは省略される。
type LegRule struct {
	ActionFemale Template `yaml:"action_female,omitempty"` // 女性×アクション系のみの専用素材
	Action       Template `yaml:"action,omitempty"`        // アクション系アニメーション
	Rest         Template `yaml:"rest,omitempty"`          // idle/sit 系のフォールバック素材
	All          Template `yaml:"all,omitempty"`           // 上記以外すべての既定
}

func (r LegRule) templates() []Template {
	return []Template{r.ActionFemale, r.Action, r.Rest, r.All}
}

// Table は (衣装カテゴリ, アニメーション区分, ボディ型) からパステンプレートへの
// 宣言的な対応表なのだ。起動時に Validate を通してから使うのだよ。
type Table struct {
	EyeColor         string               `yaml:"eye_color"`
	ActionAnimations []string             `yaml:"action_animations"`
	RestAnimations   []string             `yaml:"rest_animations"`
	BaseLayers       []Template           `yaml:"base_layers"`
	Legwear          map[string]LegRule   `yaml:"legwear"`
	Shoes            map[string]Template  `yaml:"shoes"`
}

// DefaultTable は埋め込み済みの既定テーブルを検証済みで返します。
func DefaultTable() (Table, error) {
	return parseTable(defaultTableYAML)
}

// LoadTable は YAML ファイルからテーブルを読み込み、検証して返すのだ。
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("ワードローブ定義の読み込みに失敗したのだ: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("ワードローブ定義のデコードに失敗したのだ: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate はテーブルの完全性を起動時に確認します。
// 実行中にパス解決が黙って欠けるより、起動時に落とす方が監査しやすいのだ。
func (t Table) Validate() error {
	if t.EyeColor == "" {
		return fmt.Errorf("eye_color が未設定なのだ")
	}
	if len(t.BaseLayers) == 0 {
		return fmt.Errorf("base_layers が空なのだ")
	}
	if len(t.ActionAnimations) == 0 || len(t.RestAnimations) == 0 {
		return fmt.Errorf("action_animations と rest_animations は両方必要なのだ")
	}
	for _, a := range t.ActionAnimations {
		if t.isRest(a) {
			return fmt.Errorf("アニメーション %q が action と rest の両方に属しているのだ", a)
		}
	}

	for _, tmpl := range t.BaseLayers {
		if err := tmpl.validate(); err != nil {
			return err
		}
	}
	for _, lt := range []domain.LegType{domain.LegPants, domain.LegSkirt, domain.LegLeggings} {
		rule, ok := t.Legwear[string(lt)]
		if !ok {
			return fmt.Errorf("legwear にレッグタイプ %q の定義が無いのだ", lt)
		}
		for _, tmpl := range rule.templates() {
			if tmpl == "" {
				continue
			}
			if err := tmpl.validate(); err != nil {
				return err
			}
		}
	}
	for _, g := range []domain.Gender{domain.GenderMale, domain.GenderFemale} {
		tmpl, ok := t.Shoes[string(g)]
		if !ok || tmpl == "" {
			return fmt.Errorf("shoes に性別 %q の定義が無いのだ", g)
		}
		if err := tmpl.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) isAction(animation string) bool {
	for _, a := range t.ActionAnimations {
		if a == animation {
			return true
		}
	}
	return false
}

func (t Table) isRest(animation string) bool {
	for _, a := range t.RestAnimations {
		if a == animation {
			return true
		}
	}
	return false
}
