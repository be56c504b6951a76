package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptPostDetailLowerCase(t *testing.T) {
	body := []byte(`{
		"likes": 120,
		"comments_count": "1,204",
		"shares": null,
		"date": "01.06.2025",
		"time": "18:30",
		"description": "summer drop",
		"media": [
			{"image_url": "https://cdn/1.jpg", "thumbnail": "https://cdn/1t.jpg"},
			null,
			{"image_url": null, "thumbnail": "https://cdn/2t.jpg"},
			{"image_url": null, "thumbnail": null}
		],
		"top_comments": [
			{"username": "bob", "text": "nice", "likes": 3},
			{"username": "", "text": ""}
		]
	}`)

	d, err := adaptPostDetail(body)
	require.NoError(t, err)

	require.NotNil(t, d.Likes)
	assert.Equal(t, int64(120), *d.Likes)
	require.NotNil(t, d.Comments)
	assert.Equal(t, int64(1204), *d.Comments)
	assert.Nil(t, d.Shares)
	assert.Equal(t, "01.06.2025", d.Date)
	assert.Equal(t, "18:30", d.Hour)
	assert.Equal(t, "summer drop", d.Description)
	assert.Equal(t, []string{"https://cdn/1.jpg", "https://cdn/2t.jpg"}, d.Images())
	require.Len(t, d.TopComments, 1)
	assert.Equal(t, Comment{Username: "bob", Text: "nice", Likes: 3}, d.TopComments[0])
}

func TestAdaptPostDetailCapitalizedKeys(t *testing.T) {
	body := []byte(`{"Likes": "7", "Comments_Count": 2, "Shares": 1, "Date": "2025-06-02", "Media": []}`)

	d, err := adaptPostDetail(body)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *d.Likes)
	assert.Equal(t, int64(2), *d.Comments)
	assert.Equal(t, int64(1), *d.Shares)
	assert.Equal(t, "2025-06-02", d.Date)
	assert.Empty(t, d.Images())
}

func TestAdaptPostDetailPrefersFirstNonNullVariant(t *testing.T) {
	d, err := adaptPostDetail([]byte(`{"likes": null, "Likes": 9, "comments_count": "null"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), *d.Likes)
	assert.Nil(t, d.Comments)
}

func TestAdaptPostDetailRejectsNonObject(t *testing.T) {
	_, err := adaptPostDetail([]byte(`[1,2]`))
	assert.Error(t, err)
	_, err = adaptPostDetail([]byte(`null`))
	assert.Error(t, err)
}

func TestAdaptPostLinks(t *testing.T) {
	links, err := adaptPostLinks([]byte(`{"links": ["https://www.instagram.com/p/A/", null, " ", "https://www.instagram.com/reel/B/"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.instagram.com/p/A/", "https://www.instagram.com/reel/B/"}, links)

	links, err = adaptPostLinks([]byte(`{"Links": ["x"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, links)

	links, err = adaptPostLinks([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, links)
}
