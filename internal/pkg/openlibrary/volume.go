package openlibrary

import (
	"regexp"
	"strings"
)

var volumeEntry = regexp.MustCompile(`(?i)^v\.?\s*(\d+)\.?\s*(.+)$`)

// Volume describes where a looked-up ISBN sits in a multi-volume work.
type Volume struct {
	SeriesTitle string
	Number      int
	Title       string
	Total       int
}

// DetectVolume treats table-of-contents entries such as "v. 2. God and
// creation" as volume listings. It needs more than one entry and more than one
// listing. When the identifier list has one ISBN per volume, the position of
// isbn picks the volume; otherwise volume 1 is assumed.
func DetectVolume(isbn, title string, toc []string, isbns []string) (Volume, bool) {
	if len(toc) <= 1 {
		return Volume{}, false
	}

	var listings []string
	for _, entry := range toc {
		if m := volumeEntry.FindStringSubmatch(strings.TrimSpace(entry)); m != nil {
			listings = append(listings, strings.TrimSpace(m[2]))
		}
	}
	if len(listings) <= 1 {
		return Volume{}, false
	}

	vol := Volume{SeriesTitle: title, Total: len(listings)}
	if len(isbns) == vol.Total {
		want := strings.ReplaceAll(isbn, "-", "")
		for i, candidate := range isbns {
			if candidate == isbn || strings.ReplaceAll(candidate, "-", "") == want {
				vol.Number = i + 1
				vol.Title = listings[i]
				break
			}
		}
	}
	if vol.Number == 0 {
		vol.Number = 1
		vol.Title = listings[0]
	}
	return vol, true
}
