package discogs

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	releaseURLPattern = regexp.MustCompile(`/release/(\d+)`)
	masterURLPattern  = regexp.MustCompile(`/master/(\d+)`)
)

// ExtractReleaseID pulls the numeric release id out of a Discogs URL
// such as "https://www.discogs.com/release/123456-Artist-Title".
func ExtractReleaseID(rawURL string) (int64, error) {
	return extractID(releaseURLPattern, rawURL, "release")
}

// ExtractMasterID pulls the numeric master id out of a Discogs URL.
func ExtractMasterID(rawURL string) (int64, error) {
	return extractID(masterURLPattern, rawURL, "master")
}

func extractID(pattern *regexp.Regexp, rawURL, kind string) (int64, error) {
	match := pattern.FindStringSubmatch(rawURL)
	if match == nil {
		return 0, fmt.Errorf("no %s id in url %q", kind, rawURL)
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s id: %w", kind, err)
	}
	return id, nil
}
