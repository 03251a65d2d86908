package model

import "time"

// Category groups courses and is addressed by its href.
type Category struct {
	CategoryID string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Href       string    `db:"href" json:"href"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
