package types

// ContentType identifies one of the four upstream trending feeds.
type ContentType string

const (
	ContentModels   ContentType = "models"
	ContentDatasets ContentType = "datasets"
	ContentSpaces   ContentType = "spaces"
	ContentPapers   ContentType = "papers"
)

// TimeFrame selects the ranking window for the papers feed.
type TimeFrame string

const (
	TimeFrameToday     TimeFrame = "today"
	TimeFrameThreeDays TimeFrame = "three_days"
	TimeFrameWeek      TimeFrame = "week"
	TimeFrameMonth     TimeFrame = "month"
)

// TimeFrameTitles maps a time frame to its human label.
var TimeFrameTitles = map[TimeFrame]string{
	TimeFrameToday:     "Today",
	TimeFrameThreeDays: "Last 3 Days",
	TimeFrameWeek:      "This Week",
	TimeFrameMonth:     "This Month",
}

// Valid reports whether tf is one of the four known windows.
func (tf TimeFrame) Valid() bool {
	_, ok := TimeFrameTitles[tf]
	return ok
}

// ModelRecord is the normalized shape of one trending model.
type ModelRecord struct {
	ModelID      string `json:"modelId"`
	Author       string `json:"author"`
	AuthorAvatar string `json:"authorAvatar,omitempty"`
	Downloads    int64  `json:"downloads"`
	Likes        int64  `json:"likes"`
	LastModified string `json:"lastModified"`
	PipelineTag  string `json:"pipelineTag,omitempty"`
	IsPrivate    bool   `json:"isPrivate"`
	IsGated      bool   `json:"isGated"`
}

// DatasetServerInfo carries the dataset-server metadata attached to a
// trending dataset, when the upstream has computed it.
type DatasetServerInfo struct {
	NumRows    int64    `json:"numRows"`
	Modalities []string `json:"modalities,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Libraries  []string `json:"libraries,omitempty"`
}

// DatasetRecord is the normalized shape of one trending dataset. Datasets
// are flattened at the endpoint boundary the same way models and spaces are.
type DatasetRecord struct {
	ID             string             `json:"id"`
	FormattedTitle string             `json:"formattedTitle"`
	Author         string             `json:"author"`
	Downloads      int64              `json:"downloads"`
	Likes          int64              `json:"likes"`
	LastModified   string             `json:"lastModified"`
	ServerInfo     *DatasetServerInfo `json:"datasetsServerInfo,omitempty"`
	Gated          bool               `json:"gated"`
}

// SpaceRecord is the normalized shape of one trending space.
type SpaceRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	AuthorAvatar  string `json:"authorAvatar,omitempty"`
	Description   string `json:"description,omitempty"`
	Emoji         string `json:"emoji,omitempty"`
	Likes         int64  `json:"likes"`
	LastModified  string `json:"lastModified"`
	PrimaryDomain string `json:"domains,omitempty"`
}

// PaperRecord is the normalized shape of one trending paper.
type PaperRecord struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	Upvotes     int64  `json:"upvotes"`
	Comments    int64  `json:"comments"`
	SubmittedBy string `json:"submittedBy"`
}

// SubscribeRequest is the body accepted by the subscription endpoint.
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}
