package domain

// PromptRecord は完成した1つのプロンプト（正・負・メタ情報）を表します。
// publish フェーズと render フェーズの間で受け渡されるJSONの単位です。
type PromptRecord struct {
	Meta     string `json:"meta"`     // 例: "Twilight Sparkle | Cinematic | Forest | Flying | Gala Dress"
	Positive string `json:"positive"` // 画像生成モデルに渡す本文
	Negative string `json:"negative"` // 排除したい要素の指示
	Seed     int64  `json:"seed"`     // 被写体名由来の決定論的シード（0 は未指定）
}

// PromptSet は1回の生成セッションで作られたプロンプトのまとまりなのだ。
type PromptSet struct {
	Title   string         `json:"title"`
	Prompts []PromptRecord `json:"prompts"`
}
