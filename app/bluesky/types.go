package bluesky

// Wire types for the AT Protocol XRPC endpoints this gateway uses
// (com.atproto.server.createSession and app.bsky.feed.getTimeline). Embed
// views are a tagged union on "$type"; a single tolerant struct covers the
// variants the normalizer understands.

const (
	embedImagesView          = "app.bsky.embed.images#view"
	embedVideoView           = "app.bsky.embed.video#view"
	embedRecordView          = "app.bsky.embed.record#view"
	embedRecordWithMediaView = "app.bsky.embed.recordWithMedia#view"

	reasonRepost = "app.bsky.feed.defs#reasonRepost"
)

type createSessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type createSessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	Handle    string `json:"handle"`
}

type timelineResponse struct {
	Feed []FeedViewPost `json:"feed"`
}

type FeedViewPost struct {
	Post   PostView `json:"post"`
	Reason *Reason  `json:"reason"`
}

type Reason struct {
	Type      string `json:"$type"`
	By        *Actor `json:"by"`
	IndexedAt string `json:"indexedAt"`
}

type PostView struct {
	URI    string     `json:"uri"`
	CID    string     `json:"cid"`
	Author Actor      `json:"author"`
	Record PostRecord `json:"record"`
	Embed  *Embed     `json:"embed"`
}

type Actor struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

type PostRecord struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type Embed struct {
	Type      string       `json:"$type"`
	Images    []EmbedImage `json:"images"`
	Playlist  string       `json:"playlist"`  // video: HLS playlist URL
	Thumbnail string       `json:"thumbnail"` // video: preview image
	Alt       string       `json:"alt"`
	Record    *EmbedRecord `json:"record"`
	Media     *Embed       `json:"media"` // recordWithMedia: the media half
}

type EmbedImage struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

// EmbedRecord covers both shapes of the quoted-record embed: record#view puts
// the view record directly under "record", while recordWithMedia#view nests
// it one level deeper ("record": {"record": {...}}).
type EmbedRecord struct {
	URI    string       `json:"uri"`
	Author Actor        `json:"author"`
	Value  RecordValue  `json:"value"`
	Record *EmbedRecord `json:"record"`
}

type RecordValue struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}
