package common

// RecipeSummary 推薦結果中顯示的食譜摘要
type RecipeSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Image       *string `json:"image"` // 資料庫中可為 NULL
	Description string  `json:"deskripsi_singkat"`
}

// OrderRecipes 依照推薦順序排列食譜，找不到的 ID 直接略過
func OrderRecipes(ids []int64, recipes []RecipeSummary) []RecipeSummary {
	byID := make(map[int64]RecipeSummary, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	ordered := make([]RecipeSummary, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
