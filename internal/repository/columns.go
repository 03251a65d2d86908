package repository

import "coursehub/internal/model"

// Column lists are aliased so they can be shared between plain selects,
// joins and RETURNING clauses (tables are always aliased c, s, u, cat).
const (
	courseColumns   = `c.id, c.name, c.description, c.creator_id, c.category_id, c.status, c.price, c.href, c.discount, c.support, c.cover, c.created_at, c.updated_at`
	sessionColumns  = `s.id, s.title, s.time, s.free, s.video, s.course_id, s.created_at`
	userColumns     = `u.id, u.name, u.username, u.email, u.role, u.created_at`
	categoryColumns = `cat.id, cat.title, cat.href, cat.created_at`
)

func courseFields(c *model.Course) []any {
	return []any{
		&c.CourseID,
		&c.Name,
		&c.Description,
		&c.CreatorID,
		&c.CategoryID,
		&c.Status,
		&c.Price,
		&c.Href,
		&c.Discount,
		&c.Support,
		&c.Cover,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func sessionFields(s *model.Session) []any {
	return []any{&s.SessionID, &s.Title, &s.Time, &s.Free, &s.Video, &s.CourseID, &s.CreatedAt}
}

func userFields(u *model.User) []any {
	return []any{&u.UserID, &u.Name, &u.Username, &u.Email, &u.Role, &u.CreatedAt}
}

func categoryFields(cat *model.Category) []any {
	return []any{&cat.CategoryID, &cat.Title, &cat.Href, &cat.CreatedAt}
}

func concat(groups ...[]any) []any {
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
