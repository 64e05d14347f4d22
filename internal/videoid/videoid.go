// Package videoid extracts YouTube video ids from user-supplied URLs and builds
// the watch and comment deep links the renderer emits.
package videoid

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Domain is the canonical domain every YouTube host alias resolves to.
const Domain = "youtube.com"

// watchBase is the URL prefix deep links are built on.
const watchBase = "https://www.youtube.com/watch"

// ErrNotYouTube is returned when a URL does not name a YouTube video.
var ErrNotYouTube = errors.New("not a youtube url or video id not found")

var youtubeHosts = map[string]struct{}{
	"youtube.com":          {},
	"www.youtube.com":      {},
	"m.youtube.com":        {},
	"music.youtube.com":    {},
	"youtube-nocookie.com": {},
	"youtu.be":             {},
}

// pathPrefixes are path forms that carry the id as the next segment.
var pathPrefixes = []string{"/embed/", "/v/", "/shorts/", "/live/"}

// IsYouTubeHost reports whether host (without port) is a YouTube alias.
func IsYouTubeHost(host string) bool {
	_, ok := youtubeHosts[normalizeHost(host)]
	return ok
}

// NamespaceUUIDForDomain returns a deterministic UUIDv5 namespace for a domain.
func NamespaceUUIDForDomain(domain string) uuid.UUID {
	d := strings.TrimSpace(strings.ToLower(domain))
	d = strings.TrimSuffix(d, ".")
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(d))
}

// VideoUUID returns a deterministic UUIDv5 for a YouTube video id. It names
// output files when a title sanitizes to nothing.
func VideoUUID(videoID string) uuid.UUID {
	return uuid.NewSHA1(NamespaceUUIDForDomain(Domain), []byte(strings.TrimSpace(videoID)))
}

// ExtractYouTubeVideoID extracts the video id from a watch, youtu.be, embed,
// shorts or live URL. A URL without a scheme is treated as https.
func ExtractYouTubeVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" && u.Scheme == "" {
		if u, err = url.Parse("https://" + raw); err != nil {
			return "", err
		}
	}

	host := normalizeHost(u.Host)
	if !IsYouTubeHost(host) {
		return "", ErrNotYouTube
	}

	if host == "youtu.be" {
		if id := firstPathSegment(u.Path); id != "" {
			return id, nil
		}
		return "", ErrNotYouTube
	}

	if v := strings.TrimSpace(u.Query().Get("v")); v != "" {
		return v, nil
	}
	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
				return id, nil
			}
		}
	}

	return "", ErrNotYouTube
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return watchBase + "?v=" + url.QueryEscape(videoID)
}

// CommentLink returns the deep link to one comment of a video:
// https://www.youtube.com/watch?v={videoID}&lc={commentID}.
//
// Both ids are query-escaped, so the result never contains quotes or angle
// brackets and can be placed in an HTML attribute as is.
func CommentLink(videoID, commentID string) string {
	return WatchURL(videoID) + "&lc=" + url.QueryEscape(commentID)
}

// NormalizeSourceURL rewrites any supported YouTube URL form to
// https://www.youtube.com/watch?v={id}, dropping timestamps and tracking
// parameters.
func NormalizeSourceURL(raw string) (string, error) {
	id, err := ExtractYouTubeVideoID(raw)
	if err != nil {
		return "", err
	}
	return WatchURL(id), nil
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil {
			if parsed.Hostname() != "" {
				h = parsed.Hostname()
			}
		}
	}
	return strings.TrimSuffix(h, ".")
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
