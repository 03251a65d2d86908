package dto

import "coursehub/internal/model"

type CategoryResponseDTO struct {
	CategoryID string `json:"id"`
	Title      string `json:"title"`
	Href       string `json:"href"`
}

func ToCategoryResponse(c *model.Category) *CategoryResponseDTO {
	if c == nil {
		return nil
	}
	return &CategoryResponseDTO{CategoryID: c.CategoryID, Title: c.Title, Href: c.Href}
}
