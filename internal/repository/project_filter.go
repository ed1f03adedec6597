package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
)

// Sort orders for project listings.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// ProjectFilter is the single filtering specification for project listings.
// The SQL scope and the in-memory predicate are two views of the same
// contract; tests assert they agree so no second, divergent filter
// implementation can creep in.
type ProjectFilter struct {
	Category string
	// Status filters by lifecycle state. Empty means the listing default,
	// open; "all" disables the status filter.
	Status string
	// Remote is a tri-state flag: nil means no remote filter.
	Remote *bool
	// Search is a case-insensitive substring matched against title,
	// description and tags.
	Search string
	SortBy string
}

func (f ProjectFilter) status() string {
	switch f.Status {
	case "":
		return string(models.ProjectOpen)
	case "all":
		return ""
	default:
		return f.Status
	}
}

// Scope applies the filter to a gorm query.
func (f ProjectFilter) Scope(db *gorm.DB) *gorm.DB {
	q := db
	if f.Category != "" && f.Category != "All Categories" {
		q = q.Where("category = ?", f.Category)
	}
	if s := f.status(); s != "" {
		q = q.Where("status = ?", s)
	}
	if f.Remote != nil {
		q = q.Where("remote = ?", *f.Remote)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		pat := "%" + s + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
			pat, pat, pat,
		)
	}
	return q
}

// Matches reports whether a single project satisfies the filter. This is the
// reference predicate the SQL scope must agree with.
func (f ProjectFilter) Matches(p models.Project) bool {
	if f.Category != "" && f.Category != "All Categories" && p.Category != f.Category {
		return false
	}
	if s := f.status(); s != "" && string(p.Status) != s {
		return false
	}
	if f.Remote != nil && p.Remote != *f.Remote {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		hay := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(hay, s) {
			return false
		}
	}
	return true
}

// Order applies the filter's sort to a gorm query. Popular listings order by
// views, breaking ties on live applicant count.
func (f ProjectFilter) Order(db *gorm.DB) *gorm.DB {
	switch f.SortBy {
	case SortOldest:
		return db.Order("created_at ASC")
	case SortPopular:
		return db.
			Select("projects.*, (SELECT COUNT(*) FROM applications a WHERE a.project_id = projects.id) AS applicant_count").
			Order("views DESC, applicant_count DESC")
	default:
		return db.Order("created_at DESC")
	}
}
