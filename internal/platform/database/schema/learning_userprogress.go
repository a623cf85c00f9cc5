package schema

// LearningUserProgressTable represents the 'learning.userprogress' table
type LearningUserProgressTable struct {
	Table       string
	ID          string
	UserID      string
	ChapterID   string
	IsCompleted string
	CreatedAt   string
	UpdatedAt   string
}

// LearningUserProgress is the schema definition for learning.userprogress
var LearningUserProgress = LearningUserProgressTable{
	Table:       "learning.userprogress",
	ID:          "id",
	UserID:      "userid",
	ChapterID:   "chapterid",
	IsCompleted: "iscompleted",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t LearningUserProgressTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ChapterID, t.IsCompleted, t.CreatedAt, t.UpdatedAt}
}
