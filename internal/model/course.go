package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course statuses accepted on creation.
const (
	CourseStatusStart    = "start"
	CourseStatusPresell  = "presell"
	CourseStatusFinished = "finished"
)

// Course represents a course in the system
type Course struct {
	CourseID    string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	CreatorID   string          `db:"creator_id" json:"creator_id"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Status      string          `db:"status" json:"status"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Href        string          `db:"href" json:"href"`
	Discount    int             `db:"discount" json:"discount"`
	Support     string          `db:"support" json:"support"`
	Cover       string          `db:"cover" json:"cover"` // object key in the covers bucket
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`

	// Populated by lookups that join the referenced rows.
	Creator  *User     `db:"-" json:"creator,omitempty"`
	Category *Category `db:"-" json:"category,omitempty"`
}
