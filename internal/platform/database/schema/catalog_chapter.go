package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table       string
	ID          string
	CourseID    string
	Title       string
	Description string
	VideoURL    string
	Position    string
	IsPublished string
	IsFree      string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:       "catalog.chapter",
	ID:          "id",
	CourseID:    "courseid",
	Title:       "title",
	Description: "description",
	VideoURL:    "videourl",
	Position:    "position",
	IsPublished: "ispublished",
	IsFree:      "isfree",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CatalogChapterTable) Columns() []string {
	return []string{
		t.ID, t.CourseID, t.Title, t.Description, t.VideoURL,
		t.Position, t.IsPublished, t.IsFree, t.CreatedAt, t.UpdatedAt,
	}
}
