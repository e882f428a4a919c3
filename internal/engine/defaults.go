package engine

import (
	"fmt"
	"strings"

	"draftflow/internal/domain"
)

// sellingPointTemplates maps a category to its stock phrase list. Unknown
// categories fall back to the clothing list.
var sellingPointTemplates = map[string][]string{
	"clothing":    {"舒适面料", "经典款式", "时尚百搭", "透气亲肤"},
	"shoes":       {"舒适耐穿", "防滑耐磨", "轻便透气", "时尚设计"},
	"bags":        {"大容量", "耐用材质", "简约时尚", "多隔层设计"},
	"accessories": {"精致工艺", "时尚百搭", "品质保证", "独特设计"},
	"home":        {"环保材质", "实用便捷", "简约美观", "耐用可靠"},
	"digital":     {"高性能", "智能便捷", "品质保证", "创新科技"},
	"beauty":      {"温和不刺激", "天然成分", "持久有效", "安全可靠"},
	"food":        {"新鲜美味", "营养健康", "口感丰富", "安全放心"},
	"sports":      {"专业运动", "舒适透气", "耐用可靠", "性能卓越"},
	"baby":        {"安全无毒", "柔软舒适", "可爱设计", "易于清洗"},
}

// audienceFallback is the display text used by the title path when the
// audience set is empty. The selling-points path deliberately has no such
// fallback; the asymmetry is inherited behavior.
const audienceFallback = "通用"

// DefaultTitle composes the fallback title "{brand} {name} {audience} {category}".
func DefaultTitle(vars Variables) string {
	audience, _ := vars.lookupString("audienceText")
	if audience == "" {
		audience = audienceFallback
	}
	brand, _ := vars.lookupString("brand")
	name, _ := vars.lookupString("name")
	category, _ := vars.lookupString("category")
	return fmt.Sprintf("%s %s %s %s", brand, name, audience, category)
}

// DefaultSellingPoints returns exactly three phrases: the first two stock
// phrases of the product's category with the literal ${材质} and ${颜色}
// markers filled in, plus an always-generated closing sentence carrying the
// material, size and audience.
func DefaultSellingPoints(vars Variables) []string {
	category, _ := vars.lookupString("category")
	material, _ := vars.lookupString("material")
	color, _ := vars.lookupString("color")
	size, _ := vars.lookupString("size")

	phrases, ok := sellingPointTemplates[category]
	if !ok {
		phrases = sellingPointTemplates[domain.DefaultCategory]
	}

	points := make([]string, 0, 3)
	for _, phrase := range phrases[:2] {
		phrase = strings.ReplaceAll(phrase, "${材质}", material)
		phrase = strings.ReplaceAll(phrase, "${颜色}", color)
		points = append(points, phrase)
	}

	audience := joinAudience(vars)
	points = append(points, fmt.Sprintf("采用优质%s，尺寸为%s，适合%s日常使用。", material, size, audience))
	return points
}

func joinAudience(vars Variables) string {
	if tags, ok := vars["targetAudience"].([]string); ok {
		return strings.Join(tags, "、")
	}
	return ""
}
