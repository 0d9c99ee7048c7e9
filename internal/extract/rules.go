package extract

import "strings"

// Fixed constants shared by every post. The title suffix and author are a
// single-author-site contract; the read time is the fallback when no
// metadata value matches.
const (
	Author          = "Nipuna Perera"
	titleSuffix     = " - " + Author
	DefaultReadTime = "5 min read"
)

// metadataValueSelector is the marker class carried by every labeled
// metadata fragment in a post's markup.
const metadataValueSelector = ".metadata-value"

// KnownCategories is the closed set of valid category names. A metadata
// value is only recognized as a category if it matches one of these exactly.
// This list is a content contract shared with other tooling; extend it only
// deliberately.
var KnownCategories = []string{
	"Database",
	"DevOps",
	"AWS",
	"Cloud",
	"Security",
	"Linux",
	"Networking",
	"Python",
	"Automation",
	"Career",
}

// knownTech anchors the tag heuristic: a comma-separated metadata value is
// only treated as a tag list when it names at least one of these. Tag lists
// using only unlisted technology names are silently missed; that fragility
// is accepted as best effort.
var knownTech = []string{
	"Redis", "MySQL", "PostgreSQL", "Kafka", "Elasticsearch",
	"Docker", "Kubernetes", "Terraform", "Ansible",
	"AWS", "GCP", "Linux", "Python", "Go", "Bash",
	"Scaling", "Production", "Performance", "Replication",
	"Monitoring", "Backup", "Migration", "Security",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// knownYears is the set of four-digit years recognized by the date
// heuristic, matching the range of year directories the site has used.
var knownYears = []string{
	"2020", "2021", "2022", "2023", "2024", "2025", "2026",
}

const readTimeMarker = "min read"

func looksLikeDate(v string) bool {
	for _, m := range monthNames {
		if strings.Contains(v, m) {
			return true
		}
	}
	for _, y := range knownYears {
		if strings.Contains(v, y) {
			return true
		}
	}
	return false
}

func isKnownCategory(v string) bool {
	for _, c := range KnownCategories {
		if v == c {
			return true
		}
	}
	return false
}

// looksLikeTags: must contain a comma, must name a known technology, and
// must not be a read-time value.
func looksLikeTags(v string) bool {
	if !strings.Contains(v, ",") || strings.Contains(v, readTimeMarker) {
		return false
	}
	for _, t := range knownTech {
		if strings.Contains(v, t) {
			return true
		}
	}
	return false
}

func splitTags(v string) []string {
	parts := strings.Split(v, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
