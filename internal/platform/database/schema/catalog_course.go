package schema

// CatalogCourseTable represents the 'catalog.course' table
type CatalogCourseTable struct {
	Table       string
	ID          string
	OwnerID     string
	CategoryID  string
	Title       string
	Slug        string
	Description string
	ImageURL    string
	Price       string
	IsPublished string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogCourse is the schema definition for catalog.course
var CatalogCourse = CatalogCourseTable{
	Table:       "catalog.course",
	ID:          "id",
	OwnerID:     "ownerid",
	CategoryID:  "categoryid",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	ImageURL:    "imageurl",
	Price:       "price",
	IsPublished: "ispublished",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CatalogCourseTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.CategoryID, t.Title, t.Slug, t.Description,
		t.ImageURL, t.Price, t.IsPublished, t.CreatedAt, t.UpdatedAt,
	}
}
