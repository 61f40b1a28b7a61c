package wardrobe

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/shouni/go-sprite-kit/pkg/domain"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	table, err := DefaultTable()
	if err != nil {
		t.Fatalf("既定テーブルの読み込みに失敗しました: %v", err)
	}
	return NewResolver(table, domain.DefaultPalette())
}

func baseRequest(gender domain.Gender, animation string) Request {
	return Request{
		Animation:  animation,
		Gender:     gender,
		SkinColor:  "light",
		HairColor:  "dark_brown",
		ShirtColor: "white",
		LegColor:   "blue",
		ShoeColor:  "black",
		HairStyle:  "natural",
	}
}

func TestResolve_LegwearTable(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name      string
		gender    domain.Gender
		legType   domain.LegType
		animation string
		want      string // 空文字はレイヤー省略を期待する
	}{
		{"スカート×walkは専用素材", domain.GenderFemale, domain.LegSkirt, "walk", "legs/skirts/plain/female/walk/blue.png"},
		{"スカート×shootは専用素材", domain.GenderFemale, domain.LegSkirt, "shoot", "legs/skirts/plain/female/shoot/blue.png"},
		{"スカート×idleはストッキング代替", domain.GenderFemale, domain.LegSkirt, "idle", "legs/leggings/thin/idle/blue.png"},
		{"スカート×sitはストッキング代替", domain.GenderFemale, domain.LegSkirt, "sit", "legs/leggings/thin/sit/blue.png"},
		{"スカート×未対応アニメーションは省略", domain.GenderFemale, domain.LegSkirt, "jump", ""},
		{"レギンス×idleはthinボディ型", domain.GenderFemale, domain.LegLeggings, "idle", "legs/leggings/thin/idle/blue.png"},
		{"レギンス×walkはthinボディ型", domain.GenderFemale, domain.LegLeggings, "walk", "legs/leggings/thin/walk/blue.png"},
		{"女性パンツ×walkは専用素材", domain.GenderFemale, domain.LegPants, "walk", "legs/pants/female/walk/blue.png"},
		{"女性パンツ×slashは専用素材", domain.GenderFemale, domain.LegPants, "slash", "legs/pants/female/slash/blue.png"},
		{"女性パンツ×idleはthinボディ型", domain.GenderFemale, domain.LegPants, "idle", "legs/pants/thin/idle/blue.png"},
		{"女性パンツ×sitはthinボディ型", domain.GenderFemale, domain.LegPants, "sit", "legs/pants/thin/sit/blue.png"},
		{"男性パンツ×walkはmaleボディ型", domain.GenderMale, domain.LegPants, "walk", "legs/pants/male/walk/blue.png"},
		{"男性パンツ×idleはmaleボディ型", domain.GenderMale, domain.LegPants, "idle", "legs/pants/male/idle/blue.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(tt.gender, tt.animation)
			req.LegType = tt.legType

			res, err := r.Resolve(req, nil)
			if err != nil {
				t.Fatalf("解決に失敗しました: %v", err)
			}

			var got string
			for _, layer := range res.Layers {
				if strings.HasPrefix(layer, "legs/") {
					got = layer
					break
				}
			}

			if got != tt.want {
				t.Errorf("レッグレイヤーが一致しません。期待値 %q, 実際の値 %q", tt.want, got)
			}
		})
	}
}

func TestResolve_ShoeTable(t *testing.T) {
	r := newTestResolver(t)

	t.Run("女性はrevisedシリーズのthinボディ型", func(t *testing.T) {
		req := baseRequest(domain.GenderFemale, "idle")
		req.LegType = domain.LegLeggings
		res, err := r.Resolve(req, nil)
		if err != nil {
			t.Fatalf("解決に失敗しました: %v", err)
		}
		last := res.Layers[len(res.Layers)-1]
		if last != "feet/shoes/revised/thin/idle/black.png" {
			t.Errorf("靴レイヤーが一致しません: %q", last)
		}
	})

	t.Run("男性はbasicシリーズのmaleボディ型", func(t *testing.T) {
		res, err := r.Resolve(baseRequest(domain.GenderMale, "sit"), nil)
		if err != nil {
			t.Fatalf("解決に失敗しました: %v", err)
		}
		last := res.Layers[len(res.Layers)-1]
		if last != "feet/shoes/basic/male/sit/black.png" {
			t.Errorf("靴レイヤーが一致しません: %q", last)
		}
	})
}

func TestResolve_MaleWalkScenario(t *testing.T) {
	// 男性/light/dark_brown/natural/white/blue/black の walk は
	// ちょうど8レイヤーがこの順で解決されること
	r := newTestResolver(t)

	res, err := r.Resolve(baseRequest(domain.GenderMale, "walk"), nil)
	if err != nil {
		t.Fatalf("解決に失敗しました: %v", err)
	}

	want := []string{
		"body/bodies/male/walk/light.png",
		"head/heads/human/male/walk/light.png",
		"head/nose/big/adult/walk/light.png",
		"eyes/human/adult/default/walk/brown.png",
		"hair/natural/adult/walk/dark_brown.png",
		"torso/clothes/longsleeve/longsleeve/male/walk/white.png",
		"legs/pants/male/walk/blue.png",
		"feet/shoes/basic/male/walk/black.png",
	}
	if !reflect.DeepEqual(res.Layers, want) {
		t.Errorf("レイヤー列が一致しません。\n期待値: %v\n実際の値: %v", want, res.Layers)
	}
	if res.LegType != domain.LegPants {
		t.Errorf("男性のレッグタイプは pants のはずです: %q", res.LegType)
	}
}

func TestResolve_Idempotence(t *testing.T) {
	// 入力がすべて明示されていれば乱数源なしで同一の結果が得られること
	r := newTestResolver(t)
	req := baseRequest(domain.GenderFemale, "walk")
	req.LegType = domain.LegSkirt

	first, err := r.Resolve(req, nil)
	if err != nil {
		t.Fatalf("1回目の解決に失敗しました: %v", err)
	}
	second, err := r.Resolve(req, nil)
	if err != nil {
		t.Fatalf("2回目の解決に失敗しました: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("同一入力から異なる結果が得られました。\n1回目: %v\n2回目: %v", first, second)
	}
}

func TestResolve_RandomDraws(t *testing.T) {
	r := newTestResolver(t)

	t.Run("男性はレッグタイプ指定を無視してpants固定", func(t *testing.T) {
		req := baseRequest(domain.GenderMale, "idle")
		req.LegType = "" // 未指定でも抽選は起きないのだ
		res, err := r.Resolve(req, nil)
		if err != nil {
			t.Fatalf("解決に失敗しました: %v", err)
		}
		if res.LegType != domain.LegPants {
			t.Errorf("期待値 pants, 実際の値 %q", res.LegType)
		}
	})

	t.Run("同じシードからは同じ抽選結果が得られること", func(t *testing.T) {
		req := baseRequest(domain.GenderFemale, "walk")
		req.LegType = ""
		req.HairStyle = ""

		res1, err := r.Resolve(req, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("解決に失敗しました: %v", err)
		}
		res2, err := r.Resolve(req, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("解決に失敗しました: %v", err)
		}
		if res1.LegType != res2.LegType || res1.HairStyle != res2.HairStyle {
			t.Errorf("抽選が決定論的ではありません: %v vs %v", res1, res2)
		}
	})

	t.Run("抽選が必要なのに乱数源が無い場合はエラー", func(t *testing.T) {
		req := baseRequest(domain.GenderFemale, "walk")
		req.LegType = ""
		if _, err := r.Resolve(req, nil); err == nil {
			t.Error("乱数源なしの抽選でエラーが発生しませんでした")
		}
	})

	t.Run("未知の性別はエラー", func(t *testing.T) {
		req := baseRequest("robot", "walk")
		if _, err := r.Resolve(req, nil); err == nil {
			t.Error("未知の性別でエラーが発生しませんでした")
		}
	})
}
