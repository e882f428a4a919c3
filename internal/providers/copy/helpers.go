package copy

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	staticProviderName   = "static"
	deepSeekProviderName = "deepseek"

	maxSellingPoints = 3
)

type modelCopyPayload struct {
	Title         string   `json:"title"`
	SellingPoints []string `json:"selling_points"`
}

// buildCopyPrompt renders the single-call prompt asking for a title plus
// three selling points as strict JSON, in the requested locale.
func buildCopyPrompt(req CopyRequest) string {
	p := req.Product
	audience := strings.Join(p.TargetAudience, "、")

	sb := &strings.Builder{}
	if req.Locale == "en" {
		sb.WriteString("Write e-commerce marketing copy for the product below: one catchy title (brand, product name and audience, under 20 words) and exactly 3 selling points (15-30 words each). ")
		sb.WriteString(`Respond strictly with JSON: {"title":string,"selling_points":string[]}. `)
		fmt.Fprintf(sb, "Product: name=%q brand=%q material=%q size=%q color=%q audience=%q category=%q.",
			p.Name, orUnknown(p.Brand), orUnknown(p.Material), orUnknown(p.Size), orUnknown(p.Color), coalesce(audience, "general"), orUnknown(p.Category))
		return sb.String()
	}

	sb.WriteString("请为以下商品生成一个吸引人的标题和3条卖点文案。要求：标题包含品牌、商品名、适用人群，简洁有力，20字以内；卖点突出商品特点和优势，每条15-30字。")
	sb.WriteString(`请严格返回 JSON：{"title":"...","selling_points":["...","...","..."]}，不要其他内容。`)
	fmt.Fprintf(sb, "商品信息：商品名=%s，品牌=%s，材质=%s，尺寸=%s，颜色=%s，适用人群=%s，类目=%s。",
		p.Name, orUnknown(p.Brand), orUnknown(p.Material), orUnknown(p.Size), orUnknown(p.Color), coalesce(audience, "通用"), orUnknown(p.Category))
	return sb.String()
}

func orUnknown(v string) string {
	return coalesce(v, "未知")
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}

var pointNumbering = regexp.MustCompile(`^\d+[.、]\s*`)

// normalizePoints strips list numbering and blanks and caps the list at
// three entries, mirroring how the raw model output is usually shaped.
func normalizePoints(points []string) []string {
	var result []string
	for _, point := range points {
		point = pointNumbering.ReplaceAllString(strings.TrimSpace(point), "")
		if point == "" {
			continue
		}
		result = append(result, point)
		if len(result) == maxSellingPoints {
			break
		}
	}
	return result
}

func parseModelPayload(raw string) (modelCopyPayload, error) {
	var zero modelCopyPayload
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded modelCopyPayload
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
