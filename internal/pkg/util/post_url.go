package util

import (
	"errors"
	"net/url"
	"strings"
)

const (
	instagramHost   = "instagram.com"
	instagramPrefix = "https://www.instagram.com/"
)

// NormalizePostURL canonicalizes an Instagram post URL into the dedup key.
// Non-Instagram and unparseable URLs are returned unchanged.
func NormalizePostURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.Contains(strings.ToLower(u.Host), instagramHost) {
		return raw
	}

	segments := pathSegments(u.Path)
	if len(segments) == 0 {
		return raw
	}

	switch segments[0] {
	case "p", "reel":
		if len(segments) < 2 {
			return raw
		}
		return instagramPrefix + segments[0] + "/" + segments[1] + "/"
	default:
		return instagramPrefix + "p/" + segments[0] + "/"
	}
}

// IsInstagramURL reports whether raw points at instagram.com
func IsInstagramURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && strings.Contains(strings.ToLower(u.Host), instagramHost)
}

// ExtractUsername returns the profile name of an account URL such as https://www.instagram.com/acme/
func ExtractUsername(profileURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil {
		return "", &ParseError{Kind: "profile url", Input: profileURL, Err: err}
	}
	if u.Host == "" {
		return "", &ParseError{Kind: "profile url", Input: profileURL, Err: errors.New("missing host")}
	}

	segments := pathSegments(u.Path)
	if len(segments) == 0 {
		return "", &ParseError{Kind: "profile url", Input: profileURL, Err: errors.New("missing username")}
	}

	name := strings.TrimPrefix(segments[0], "@")
	switch name {
	case "", "p", "reel", "reels", "stories", "explore":
		return "", &ParseError{Kind: "profile url", Input: profileURL, Err: errors.New("not a profile link")}
	}
	return name, nil
}

func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
