package scraper

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// The links and post endpoints disagree on key casing (likes / Likes,
// comments_count / Comments_Count ...). Every variant is read here and nowhere else.
var (
	likesKeys       = []string{"likes", "Likes", "likes_count", "Likes_Count"}
	commentsKeys    = []string{"comments_count", "Comments_Count", "comments", "Comments"}
	sharesKeys      = []string{"shares", "Shares", "shares_count", "Shares_Count"}
	dateKeys        = []string{"date", "Date"}
	hourKeys        = []string{"time", "Time", "hour", "Hour"}
	descriptionKeys = []string{"description", "Description", "caption", "Caption"}
	mediaKeys       = []string{"media", "Media"}
	topCommentKeys  = []string{"top_comments", "Top_Comments", "topComments"}
	linksKeys       = []string{"links", "Links"}

	imageURLKeys  = []string{"image_url", "Image_Url", "imageUrl"}
	thumbnailKeys = []string{"thumbnail", "Thumbnail", "thumbnail_url"}
	usernameKeys  = []string{"username", "Username", "owner", "user"}
	textKeys      = []string{"text", "Text", "comment", "Comment"}
)

var errNotObject = errors.New("payload is not a JSON object")

type rawObject map[string]json.RawMessage

func decodeObject(body []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNotObject
	}
	return obj, nil
}

// pick returns the first key present with a non-null value
func (o rawObject) pick(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func (o rawObject) str(keys []string) string {
	v, ok := o.pick(keys)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.Trim(string(v), `"`)
}

// counter accepts a number, a numeric string ("1,204") or null
func (o rawObject) counter(keys []string) *int64 {
	v, ok := o.pick(keys)
	if !ok {
		return nil
	}

	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n := int64(f)
		return &n
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil
	}
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (o rawObject) objects(keys []string) []rawObject {
	v, ok := o.pick(keys)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil
	}
	out := make([]rawObject, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		var obj rawObject
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, obj)
	}
	return out
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// adaptPostDetail maps a get_insta_post payload into PostDetail
func adaptPostDetail(body []byte) (*PostDetail, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{
		Likes:       obj.counter(likesKeys),
		Comments:    obj.counter(commentsKeys),
		Shares:      obj.counter(sharesKeys),
		Date:        obj.str(dateKeys),
		Hour:        obj.str(hourKeys),
		Description: obj.str(descriptionKeys),
	}

	for _, m := range obj.objects(mediaKeys) {
		detail.Media = append(detail.Media, Media{
			ImageURL:  m.str(imageURLKeys),
			Thumbnail: m.str(thumbnailKeys),
		})
	}

	for _, c := range obj.objects(topCommentKeys) {
		comment := Comment{
			Username: c.str(usernameKeys),
			Text:     c.str(textKeys),
		}
		if likes := c.counter(likesKeys); likes != nil {
			comment.Likes = *likes
		}
		if comment.Text == "" && comment.Username == "" {
			continue
		}
		detail.TopComments = append(detail.TopComments, comment)
	}

	return detail, nil
}

// adaptPostLinks maps a get_insta_post_links payload into a list of raw links
func adaptPostLinks(body []byte) ([]string, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	v, ok := obj.pick(linksKeys)
	if !ok {
		return []string{}, nil
	}

	var raw []*string
	if err = json.Unmarshal(v, &raw); err != nil {
		return nil, err
	}
	links := make([]string, 0, len(raw))
	for _, l := range raw {
		if l == nil || strings.TrimSpace(*l) == "" {
			continue
		}
		links = append(links, strings.TrimSpace(*l))
	}
	return links, nil
}
