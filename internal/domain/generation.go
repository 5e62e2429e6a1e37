package domain

// ContentType selects how much of the video the generator should draft.
type ContentType string

// Supported content types. The zero value behaves like ContentTypeIdea.
const (
	ContentTypeIdea       ContentType = "idea"
	ContentTypeKeypoints  ContentType = "keypoints"
	ContentTypeFullScript ContentType = "fullScript"
)

// IsValid reports whether c is a known content type. The empty string is
// accepted and means ContentTypeIdea.
func (c ContentType) IsValid() bool {
	switch c {
	case "", ContentTypeIdea, ContentTypeKeypoints, ContentTypeFullScript:
		return true
	default:
		return false
	}
}

// OrDefault returns c, or ContentTypeIdea when c is empty.
func (c ContentType) OrDefault() ContentType {
	if c == "" {
		return ContentTypeIdea
	}
	return c
}

// GenerationRequest describes the video idea a creator wants generated.
// It is built by the caller for a single generation and never mutated.
type GenerationRequest struct {
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	VideoFocus    string      `json:"videoFocus"`
	VideoLength   string      `json:"videoLength"`
	TemplateStyle string      `json:"templateStyle"`
	ContentTone   string      `json:"contentTone"`
	TitleTemplate string      `json:"titleTemplate,omitempty"`
	ContentType   ContentType `json:"contentType,omitempty"`
	TimingDetail  bool        `json:"timingDetail,omitempty"`
}

// VideoIdeaContent is a generated (or synthesised) video idea.
//
// Category, Subcategory and VideoLength always echo the GenerationRequest
// that produced the content.
type VideoIdeaContent struct {
	Title               string   `json:"title"`
	Outline             []string `json:"outline"`
	MidVideoMention     string   `json:"midVideoMention"`
	EndVideoMention     string   `json:"endVideoMention"`
	ThumbnailIdea       string   `json:"thumbnailIdea"`
	InteractionQuestion string   `json:"interactionQuestion"`
	Category            string   `json:"category"`
	Subcategory         string   `json:"subcategory"`
	VideoLength         string   `json:"videoLength"`
}
