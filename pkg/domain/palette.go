package domain

// Palette は抽選に使う色とスタイルの候補リストを保持する不変の設定データです。
// リスト内の重複はそのまま抽選の重みとして働きます（例: 男性の "natural" は9倍）。
// プロセス全体のグローバル変数ではなく、この構造体を生成側へ注入して使うのだ。
type Palette struct {
	SkinColors       []string
	HairColors       []string
	ShirtColors      []string
	LegColors        []string
	ShoeColors       []string
	LegTypes         []LegType
	FemaleHairStyles []string
	MaleHairStyles   []string
}

// DefaultPalette はLPC素材に実在する色・スタイルだけを含む既定のパレットを返します。
// 呼び出しごとに新しいスライスを返すため、呼び出し元が変更しても他へ波及しないのだ。
func DefaultPalette() Palette {
	return Palette{
		SkinColors: []string{
			"light", "light", "light", "light", "light", "light", "light",
			"amber", "olive", "taupe", "bronze", "brown", "black",
		},
		HairColors: []string{
			"dark_brown", "dark_brown", "dark_brown", "dark_brown", "dark_brown",
			"blonde", "blonde", "blonde", "black", "white", "green", "orange",
			"gray", "strawberry", "chestnut", "chestnut", "chestnut", "chestnut",
			"raven",
		},
		ShirtColors: []string{
			"white", "black", "blue", "red", "green", "yellow", "purple",
			"orange", "brown", "gray", "maroon", "teal", "navy", "lavender",
			"pink", "charcoal", "forest", "slate", "rose", "sky",
		},
		LegColors: []string{
			"blue", "black", "brown", "gray", "tan", "green", "red", "white",
			"navy", "maroon", "purple", "teal", "charcoal", "forest", "slate",
		},
		ShoeColors: []string{
			"black", "brown", "white", "gray", "red", "blue", "maroon", "navy",
			"green", "tan", "leather",
		},
		LegTypes: []LegType{LegPants, LegSkirt, LegLeggings},
		FemaleHairStyles: []string{
			"long", "long_messy", "long_messy2", "long_straight",
			"curly_long", "curtains_long", "dreadlocks_long",
			"pigtails", "pigtails_bangs", "lob",
			"bangslong", "loose", "half_up", "idol",
			"bangs", "bangs_bun", "bob", "bob_side_part",
			"parted_side_bangs", "parted_side_bangs2",
		},
		MaleHairStyles: []string{
			"natural", "natural", "natural", "natural", "natural", "natural",
			"natural", "natural",
			"plain", "bedhead", "messy1", "messy2", "messy3", "unkempt",
			"buzzcut", "balding", "shorthawk", "flat_top_straight",
			"curly_short", "curly_short2", "bangsshort", "bob", "bob_side_part",
			"parted", "parted2", "parted3", "cowlick",
			"curtains", "mop", "swoop", "swoop_side", "relm_short",
			"high_and_tight", "jewfro", "afro", "cornrows", "dreadlocks_short",
			"twists_fade", "twists_straight", "natural",
		},
	}
}

// HairStylesFor は性別に対応するヘアスタイル候補を返すのだ。
func (p Palette) HairStylesFor(g Gender) []string {
	if g == GenderFemale {
		return p.FemaleHairStyles
	}
	return p.MaleHairStyles
}
