package api

// FindByNameRequest asks for the most relevant product for a keyword.
type FindByNameRequest struct {
	Keyword string `json:"keyword"`
}

// FindByNameResponse reports the ranked pick, or the reason none was made.
type FindByNameResponse struct {
	Found  bool    `json:"found"`
	URL    string  `json:"url,omitempty"`
	Title  string  `json:"title,omitempty"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// AffiliateLinkRequest asks for a tracked link for a product URL.
type AffiliateLinkRequest struct {
	ProductURL string `json:"productUrl"`
}

// AffiliateLinkResponse carries the resolved link and its provenance.
type AffiliateLinkResponse struct {
	Link        string `json:"link"`
	Via         string `json:"via"`
	IsAffiliate bool   `json:"isAffiliate"`
}

// CampaignRequest carries the inputs for a one-shot campaign build.
type CampaignRequest struct {
	AffiliateURL string `json:"affiliateUrl"`
	ProductTitle string `json:"productTitle"`
	ImageURLHint string `json:"imageUrlHint,omitempty"`
	Brief        string `json:"brief,omitempty"`
}

// CampaignResponse is the full artifact bundle for a successful run.
type CampaignResponse struct {
	OK         bool           `json:"ok"`
	Inputs     CampaignInputs `json:"inputs"`
	Assets     CampaignAssets `json:"assets"`
	AdCopy     string         `json:"adCopy"`
	Video      CampaignVideo  `json:"video"`
	SocialPost string         `json:"socialPost"`
}

// CampaignInputs echoes the effective inputs, hint resolution included.
type CampaignInputs struct {
	AffiliateURL     string `json:"affiliateUrl"`
	ProductTitle     string `json:"productTitle"`
	Brief            string `json:"brief,omitempty"`
	ImageURLDetected string `json:"imageUrlDetected"`
}

// CampaignAssets describes the downloaded image without embedding it whole.
type CampaignAssets struct {
	ImageDataURLContentType string `json:"imageDataUrlContentType"`
	ImageDataURLPreview     string `json:"imageDataUrlPreview"`
}

// CampaignVideo points at the encoded video under the static mount.
type CampaignVideo struct {
	VideoURL string `json:"videoUrl"`
}

// ViralIdeaRequest optionally lists phrases the model should avoid.
type ViralIdeaRequest struct {
	Exclude []string `json:"exclude,omitempty"`
}

// ViralIdeaResponse carries a single suggested search phrase.
type ViralIdeaResponse struct {
	Idea string `json:"idea"`
}

// DebugRequest overrides the default probe keywords.
type DebugRequest struct {
	Keywords string `json:"keywords,omitempty"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error envelope for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
