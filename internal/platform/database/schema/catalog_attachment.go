package schema

// CatalogAttachmentTable represents the 'catalog.attachment' table
type CatalogAttachmentTable struct {
	Table     string
	ID        string
	CourseID  string
	Name      string
	URL       string
	CreatedAt string
	UpdatedAt string
}

// CatalogAttachment is the schema definition for catalog.attachment
var CatalogAttachment = CatalogAttachmentTable{
	Table:     "catalog.attachment",
	ID:        "id",
	CourseID:  "courseid",
	Name:      "name",
	URL:       "url",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogAttachmentTable) Columns() []string {
	return []string{t.ID, t.CourseID, t.Name, t.URL, t.CreatedAt, t.UpdatedAt}
}
