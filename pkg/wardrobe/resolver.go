package wardrobe

import (
	"fmt"
	"math/rand"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

// Request は1枚のスプライトシートに対するレイヤー解決の入力です。
// LegType と HairStyle が空の場合は rng から抽選されるのだ。
type Request struct {
	Animation  string
	Gender     domain.Gender
	SkinColor  string
	HairColor  string
	ShirtColor string
	LegColor   string
	ShoeColor  string
	LegType    domain.LegType // 空なら女性は抽選、男性は pants 固定
	HairStyle  string         // 空なら性別別リストから抽選
}

// Resolution は解決済みのレイヤー一覧と、実際に使われた抽選結果を保持します。
// Layers の並び順がそのまま合成時の z-order になるのだ。
type Resolution struct {
	Layers    []string
	LegType   domain.LegType
	HairStyle string
}

// Resolver はキャラクター属性とアニメーションから、合成すべきレイヤーパスの
// 順序付きリストを決定論的に導出します。抽選が必要な場合のみ rng を消費するのだ。
type Resolver struct {
	table   Table
	palette domain.Palette
}

// NewResolver は検証済みのテーブルとパレットから Resolver を生成します。
func NewResolver(table Table, palette domain.Palette) *Resolver {
	return &Resolver{table: table, palette: palette}
}

// Resolve はレイヤーパスを z-order 順（body → head → nose → eyes → hair →
// shirt → [legwear] → shoes）で返します。legwear はテーブルのどの分岐にも
// 該当しない場合のみ省略され、それはエラーではなく意図された挙動なのだ。
// すべての入力が明示されていれば rng は一切消費されず、結果は冪等になる。
func (r *Resolver) Resolve(req Request, rng *rand.Rand) (Resolution, error) {
	if !req.Gender.Valid() {
		return Resolution{}, fmt.Errorf("未知の性別なのだ: %q", req.Gender)
	}
	if req.Animation == "" {
		return Resolution{}, fmt.Errorf("アニメーション名が空なのだ")
	}

	legType, err := r.resolveLegType(req, rng)
	if err != nil {
		return Resolution{}, err
	}

	hairStyle := req.HairStyle
	if hairStyle == "" {
		if rng == nil {
			return Resolution{}, fmt.Errorf("ヘアスタイルの抽選には乱数源が必要なのだ")
		}
		styles := r.palette.HairStylesFor(req.Gender)
		hairStyle = styles[rng.Intn(len(styles))]
	}

	// 女性のレッグ系素材は "thin" ボディ型で揃っているのだ
	legBodyType := string(req.Gender)
	if req.Gender == domain.GenderFemale {
		legBodyType = "thin"
	}

	vars := map[string]string{
		"gender":        string(req.Gender),
		"animation":     req.Animation,
		"skin_color":    req.SkinColor,
		"hair_color":    req.HairColor,
		"hair_style":    hairStyle,
		"shirt_color":   req.ShirtColor,
		"leg_color":     req.LegColor,
		"shoe_color":    req.ShoeColor,
		"leg_body_type": legBodyType,
		"eye_color":     r.table.EyeColor,
	}

	layers := make([]string, 0, len(r.table.BaseLayers)+2)
	for _, tmpl := range r.table.BaseLayers {
		layers = append(layers, tmpl.Expand(vars))
	}

	if legTmpl := r.legTemplate(legType, req.Gender, req.Animation); legTmpl != "" {
		layers = append(layers, legTmpl.Expand(vars))
	}

	layers = append(layers, r.table.Shoes[string(req.Gender)].Expand(vars))

	return Resolution{
		Layers:    layers,
		LegType:   legType,
		HairStyle: hairStyle,
	}, nil
}

// resolveLegType はレッグタイプを確定させます。男性は常に pants 固定なのだ。
func (r *Resolver) resolveLegType(req Request, rng *rand.Rand) (domain.LegType, error) {
	if req.Gender == domain.GenderMale {
		return domain.LegPants, nil
	}
	if req.LegType != "" {
		if !req.LegType.Valid() {
			return "", fmt.Errorf("未知のレッグタイプなのだ: %q", req.LegType)
		}
		return req.LegType, nil
	}
	if rng == nil {
		return "", fmt.Errorf("レッグタイプの抽選には乱数源が必要なのだ")
	}
	return r.palette.LegTypes[rng.Intn(len(r.palette.LegTypes))], nil
}

// legTemplate はテーブルの名前付き分岐を宣言順（action_female → action →
// rest → all）に評価し、最初に該当したテンプレートを返します。
// 空文字はレイヤー省略を意味するのだ。
func (r *Resolver) legTemplate(legType domain.LegType, gender domain.Gender, animation string) Template {
	rule := r.table.Legwear[string(legType)]

	if rule.ActionFemale != "" && gender == domain.GenderFemale && r.table.isAction(animation) {
		return rule.ActionFemale
	}
	if rule.Action != "" && r.table.isAction(animation) {
		return rule.Action
	}
	if rule.Rest != "" && r.table.isRest(animation) {
		return rule.Rest
	}
	return rule.All
}
