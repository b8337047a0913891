package layout

import "strings"

// Tag selects the positioning strategy for a slide.
type Tag int

const (
	TagContent Tag = iota
	TagTitle
	TagImageLeft
	TagImageRight
	TagTwoColumn
	TagAgenda
	TagSummary
	TagTimeline
	TagQA
)

var tagNames = map[Tag]string{
	TagContent:    "content",
	TagTitle:      "title",
	TagImageLeft:  "content_image_left",
	TagImageRight: "content_image_right",
	TagTwoColumn:  "two_column",
	TagAgenda:     "agenda",
	TagSummary:    "summary",
	TagTimeline:   "timeline",
	TagQA:         "qa",
}

var tagsByName = map[string]Tag{
	"content":             TagContent,
	"title":               TagTitle,
	"content_image_left":  TagImageLeft,
	"image_left":          TagImageLeft,
	"content_image_right": TagImageRight,
	"image_right":         TagImageRight,
	"two_column":          TagTwoColumn,
	"two_column_content":  TagTwoColumn,
	"agenda":              TagAgenda,
	"summary":             TagSummary,
	"timeline":            TagTimeline,
	"qa":                  TagQA,
}

// ParseTag maps a stored layout string to a Tag. Matching ignores case and
// surrounding space. Unknown or empty strings yield TagContent.
func ParseTag(s string) Tag {
	if t, ok := tagsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return TagContent
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return tagNames[TagContent]
}
