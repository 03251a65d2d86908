package dto

import (
	"time"

	"coursehub/internal/model"

	"github.com/shopspring/decimal"
)

// CourseCreateDTO holds the multipart fields of a course creation request
type CourseCreateDTO struct {
	Name        string          `form:"name" validate:"required,max=255"`
	Description string          `form:"description" validate:"max=10000"`
	Support     string          `form:"support" validate:"max=255"`
	Href        string          `form:"href" validate:"omitempty,max=100"`
	Price       decimal.Decimal `form:"price" validate:"gte=0"`
	Status      string          `form:"status" validate:"omitempty,oneof=start presell finished"`
	Discount    int             `form:"discount" validate:"gte=0,lte=100"`
	CategoryID  string          `form:"categoryId" validate:"required,uuid"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	CourseID    string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	CreatorID   string               `json:"creatorId"`
	Creator     *UserResponseDTO     `json:"creator,omitempty"`
	CategoryID  string               `json:"categoryId"`
	Category    *CategoryResponseDTO `json:"category,omitempty"`
	Status      string               `json:"status"`
	Price       decimal.Decimal      `json:"price"`
	Href        string               `json:"href"`
	Discount    int                  `json:"discount"`
	Support     string               `json:"support"`
	Cover       string               `json:"cover"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// CourseDetailResponseDTO is the course page aggregate
type CourseDetailResponseDTO struct {
	Course              *CourseResponseDTO   `json:"course"`
	Sessions            []SessionResponseDTO `json:"sessions"`
	Comments            []CommentResponseDTO `json:"comments"`
	CourseStudentsCount int                  `json:"courseStudentsCount"`
	IsUserRegister      bool                 `json:"isUserRegister"`
}

type CourseDeletedResponseDTO struct {
	Message       string             `json:"message"`
	DeletedCourse *CourseResponseDTO `json:"deletedCourse"`
}

func ToCourseResponse(c *model.Course) *CourseResponseDTO {
	if c == nil {
		return nil
	}
	return &CourseResponseDTO{
		CourseID:    c.CourseID,
		Name:        c.Name,
		Description: c.Description,
		CreatorID:   c.CreatorID,
		Creator:     ToUserResponse(c.Creator),
		CategoryID:  c.CategoryID,
		Category:    ToCategoryResponse(c.Category),
		Status:      c.Status,
		Price:       c.Price,
		Href:        c.Href,
		Discount:    c.Discount,
		Support:     c.Support,
		Cover:       c.Cover,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCourseResponses(courses []model.Course) []CourseResponseDTO {
	out := make([]CourseResponseDTO, 0, len(courses))
	for i := range courses {
		out = append(out, *ToCourseResponse(&courses[i]))
	}
	return out
}
