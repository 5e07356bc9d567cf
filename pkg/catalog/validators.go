package catalog

type SearchPayload struct {
	Query string `query:"q" json:"q" mod:"trim" validate:"max=256"`
	Limit int    `query:"limit" json:"limit" default:"20" validate:"min=1,max=40"`
}

type SearchResponse struct {
	Volumes []Volume `json:"volumes"`
}
