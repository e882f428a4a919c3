package handlers

import (
	"time"

	"draftflow/internal/domain"
)

// Wire shapes use the camelCase field names the merchant frontend expects.

type productDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Brand          string    `json:"brand"`
	Material       string    `json:"material"`
	Size           string    `json:"size"`
	Color          string    `json:"color"`
	TargetAudience []string  `json:"targetAudience"`
	ImageURL       string    `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		Material:       p.Material,
		Size:           p.Size,
		Color:          p.Color,
		TargetAudience: p.TargetAudience,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
	}
}

type draftDTO struct {
	ID                string    `json:"id"`
	JobID             string    `json:"jobId"`
	ProductID         string    `json:"productId"`
	MainImageDraftURL string    `json:"mainImageDraftUrl"`
	Title             string    `json:"title"`
	SellingPoints     []string  `json:"sellingPoints"`
	Selected          bool      `json:"selected"`
	GenerationError   string    `json:"generationError,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func toDraftDTO(d domain.DraftResult) draftDTO {
	return draftDTO{
		ID:                d.ID,
		JobID:             d.JobID,
		ProductID:         d.ProductID,
		MainImageDraftURL: d.MainImageDraftURL,
		Title:             d.Title,
		SellingPoints:     d.SellingPoints,
		Selected:          d.Selected,
		GenerationError:   d.GenerationError,
		CreatedAt:         d.CreatedAt,
	}
}

func toDraftDTOs(drafts []domain.DraftResult) []draftDTO {
	out := make([]draftDTO, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, toDraftDTO(d))
	}
	return out
}

type templateDTO struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Tags      []string                 `json:"tags"`
	Thumbnail string                   `json:"thumbnail"`
	Elements  []domain.TemplateElement `json:"elements"`
	Content   domain.TemplateContent   `json:"content"`
	UsedCount int                      `json:"usedCount"`
	CreatedAt time.Time                `json:"createdAt"`
}

func toTemplateDTO(t domain.Template) templateDTO {
	return templateDTO{
		ID:        t.ID,
		Name:      t.Name,
		Tags:      t.Tags,
		Thumbnail: t.Thumbnail,
		Elements:  t.Elements,
		Content:   t.Content,
		UsedCount: t.UsedCount,
		CreatedAt: t.CreatedAt,
	}
}

type jobDTO struct {
	ID           string    `json:"id"`
	TemplateID   string    `json:"templateId,omitempty"`
	ProductIDs   []string  `json:"productIds"`
	FailureMode  string    `json:"failureMode"`
	Status       string    `json:"status"`
	Completed    int       `json:"completed"`
	Total        int       `json:"total"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toJobDTO(j domain.DraftJob) jobDTO {
	return jobDTO{
		ID:           j.ID,
		TemplateID:   j.TemplateID,
		ProductIDs:   j.ProductIDs,
		FailureMode:  string(j.FailureMode),
		Status:       string(j.Status),
		Completed:    j.Completed,
		Total:        j.Total,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
