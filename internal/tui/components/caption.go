package components

import (
	"strings"
	"time"

	"github.com/mmcdole/skylight/internal/domain"
	"github.com/mmcdole/skylight/internal/textutil"
)

const (
	captionDateFormat = "Jan 2, 2006 3:04 PM"
	captionLinkLabel  = "open in OneDrive"
)

// Caption is the metadata line shown under an image
type Caption struct {
	Text string // already safe for the terminal
	Link string // web link to the item, empty if none
}

// Empty reports whether there is nothing to show
func (c Caption) Empty() bool {
	return c.Text == "" && c.Link == ""
}

// BuildCaption formats the date, name, and tags of an item.
// Every value that came from the drive is sanitised.
func BuildCaption(p *domain.MediaPayload, loc *time.Location) Caption {
	if p == nil {
		return Caption{}
	}
	if loc == nil {
		loc = time.Local
	}

	var parts []string
	if !p.ModifiedAt.IsZero() {
		parts = append(parts, p.ModifiedAt.In(loc).Format(captionDateFormat))
	}
	if name := textutil.Sanitize(p.Name); name != "" {
		parts = append(parts, name)
	}

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = textutil.Sanitize(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 0 {
		parts = append(parts, "["+strings.Join(tags, ", ")+"]")
	}

	return Caption{
		Text: strings.Join(parts, "  "),
		Link: p.WebURL,
	}
}
