package schema

// CatalogVideoAssetTable represents the 'catalog.videoasset' table
type CatalogVideoAssetTable struct {
	Table      string
	ID         string
	ChapterID  string
	AssetID    string
	PlaybackID string
	IsReady    string
	CreatedAt  string
}

// CatalogVideoAsset is the schema definition for catalog.videoasset
var CatalogVideoAsset = CatalogVideoAssetTable{
	Table:      "catalog.videoasset",
	ID:         "id",
	ChapterID:  "chapterid",
	AssetID:    "assetid",
	PlaybackID: "playbackid",
	IsReady:    "isready",
	CreatedAt:  "createdat",
}

func (t CatalogVideoAssetTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.AssetID, t.PlaybackID, t.IsReady, t.CreatedAt}
}
