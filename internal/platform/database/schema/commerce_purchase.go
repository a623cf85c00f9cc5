package schema

// CommercePurchaseTable represents the 'commerce.purchase' table
type CommercePurchaseTable struct {
	Table     string
	ID        string
	UserID    string
	CourseID  string
	CreatedAt string
	UpdatedAt string
}

// CommercePurchase is the schema definition for commerce.purchase
var CommercePurchase = CommercePurchaseTable{
	Table:     "commerce.purchase",
	ID:        "id",
	UserID:    "userid",
	CourseID:  "courseid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CommercePurchaseTable) Columns() []string {
	return []string{t.ID, t.UserID, t.CourseID, t.CreatedAt, t.UpdatedAt}
}
