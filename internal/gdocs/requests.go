package gdocs

import (
	"unicode/utf8"

	"google.golang.org/api/docs/v1"

	"github.com/MikeSquared-Agency/quill/internal/markdown"
)

// Options controls optional formatting behavior.
type Options struct {
	// BulletLists converts list-item paragraphs into a disc bullet list.
	// Off by default: list items then render as tab-indented plain
	// paragraphs.
	BulletLists bool
}

const bulletPreset = "BULLET_DISC_CIRCLE_SQUARE"

var namedStyles = map[markdown.Style]string{
	markdown.StyleTitle:    "TITLE",
	markdown.StyleHeading1: "HEADING_1",
	markdown.StyleHeading2: "HEADING_2",
}

// buildState is the fold accumulator: the next insertion index and the
// requests emitted so far.
type buildState struct {
	index    int64
	requests []*docs.Request
}

// BuildRequests turns segments into one ordered batch of Docs API
// requests. Indices are a fold over the segments: position 0 of a fresh
// document is reserved structural content, so the cursor starts at 1, and
// every insertion advances it by the inserted text's character count.
func BuildRequests(segments []markdown.Segment, opts Options) []*docs.Request {
	st := buildState{index: 1}
	for _, seg := range segments {
		st = appendSegment(st, seg, opts)
	}
	return st.requests
}

func appendSegment(st buildState, seg markdown.Segment, opts Options) buildState {
	length := int64(utf8.RuneCountInString(seg.Text))

	st.requests = append(st.requests, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			Text:                 seg.Text,
		},
	})

	// Style ranges stop one short of the segment length so the trailing
	// newline is excluded: a named style must not bleed into the next
	// paragraph, and the range must not reference a position past the
	// current end of the document.
	start := st.index
	end := st.index + length - 1

	if named, ok := namedStyles[seg.Style]; ok {
		st.requests = append(st.requests, &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          &docs.Range{StartIndex: start, EndIndex: end},
				ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: named},
				Fields:         "namedStyleType",
			},
		})
	}

	if seg.Style == markdown.StyleListItem && opts.BulletLists {
		st.requests = append(st.requests, &docs.Request{
			CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
				Range:        &docs.Range{StartIndex: start, EndIndex: end},
				BulletPreset: bulletPreset,
			},
		})
	}

	if seg.Bold {
		st.requests = append(st.requests, &docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range:     &docs.Range{StartIndex: start, EndIndex: end},
				TextStyle: &docs.TextStyle{Bold: true},
				Fields:    "bold",
			},
		})
	}

	st.index += length
	return st
}
