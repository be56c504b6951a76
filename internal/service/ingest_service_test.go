package service

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/scraper"
	"SMMBoard/internal/pkg/util"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type ingestFixture struct {
	svc      IngestService
	repo     *memPostRepo
	accounts *MockAccountRepo
	scraper  *MockScraper
	sysBox   *MockSysBox
}

func newIngestFixture() *ingestFixture {
	repo := newMemPostRepo()
	accounts := new(MockAccountRepo)
	scr := new(MockScraper)
	sysBox := newMockSysBox()
	postSvc := NewPostService(repo, NewMetricsRecorder(repo, 0), NewAccountService(accounts), sysBox, config.MetricsConfig{CacheTTL: time.Minute})
	svc := NewIngestService(accounts, repo, postSvc, sysBox, scr,
		config.IngestConfig{RecentPosts: 10},
		config.ScraperConfig{TopCommentsCount: 3})
	return &ingestFixture{svc: svc, repo: repo, accounts: accounts, scraper: scr, sysBox: sysBox}
}

func acmeAccount() *mongo.SocialAccountModel {
	return &mongo.SocialAccountModel{
		ID:   primitive.NewObjectID(),
		Name: "Acme",
		Links: []mongo.PlatformLink{
			{Platform: "Instagram", URL: "https://www.instagram.com/acme/"},
		},
	}
}

func detail(likes int64) *scraper.PostDetail {
	return &scraper.PostDetail{Likes: util.PtrInt64(likes), Date: "01.06.2025", Hour: "12:30"}
}

func TestIngestAccount_EndToEnd(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://instagram.com/p/XYZ789/?igsh=abc"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/XYZ789/", 3).
		Return(&scraper.PostDetail{
			Likes:       util.PtrInt64(5),
			Date:        "01.06.2025",
			Hour:        "18:00",
			Description: "summer drop",
			Media: []scraper.Media{
				{ImageURL: "https://cdn.example.com/1.jpg"},
				{Thumbnail: "https://cdn.example.com/2.jpg"},
				{},
			},
			TopComments: []scraper.Comment{{Username: "bob", Text: "nice", Likes: 2}},
		}, nil)

	res := f.svc.IngestAccount(context.Background(), account, 10)
	assert.Equal(t, 1, res.Checked)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Failed)

	posts := f.repo.all()
	require.Len(t, posts, 1)
	p := posts[0]
	assert.Equal(t, "Acme", p.Account)
	require.NotNil(t, p.AccountID)
	assert.Equal(t, account.ID, *p.AccountID)
	assert.Equal(t, "https://www.instagram.com/p/XYZ789/", p.Link)
	assert.Equal(t, mongo.PlatformInstagram, p.Platform)
	assert.Equal(t, int64(5), *p.Likes)
	assert.Nil(t, p.Comments)
	assert.False(t, p.IsSponsored)
	assert.Empty(t, p.Tags)
	assert.Nil(t, p.Category)
	assert.Nil(t, p.SubCategory)
	assert.Equal(t, "sunday", p.DayOfTheWeek)
	assert.Equal(t, "18:00", p.Hour)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}, p.Images)
	require.Len(t, p.TopComments, 1)
	assert.Equal(t, "bob", p.TopComments[0].Username)

	require.Len(t, p.MetricsHistory, 1)
	assert.Equal(t, int64(5), p.MetricsHistory[0].Likes)
	assert.Equal(t, int64(0), p.MetricsHistory[0].Comments)
	assert.Equal(t, int64(0), p.MetricsHistory[0].Shares)

	f.sysBox.AssertNumberOfCalls(t, "NotifyNewPost", 1)
}

func TestIngestAccount_Idempotent(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://www.instagram.com/p/AAA/", "https://instagram.com/reel/BBB"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/AAA/", 3).Return(detail(1), nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/reel/BBB/", 3).Return(detail(2), nil)

	first := f.svc.IngestAccount(context.Background(), account, 10)
	second := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Existed)
	assert.Len(t, f.repo.all(), 2)
	f.scraper.AssertNumberOfCalls(t, "FetchPostDetail", 2)
}

func TestIngestAccount_PartialFailure(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://www.instagram.com/p/ONE/", "https://www.instagram.com/p/TWO/", "https://www.instagram.com/p/THREE/"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/ONE/", 3).Return(detail(1), nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/TWO/", 3).
		Return(nil, &scraper.FetchError{URL: "https://www.instagram.com/p/TWO/", Err: context.DeadlineExceeded})
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/THREE/", 3).Return(detail(3), nil)

	res := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 3, res.Checked)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Failed)
	links := make([]string, 0)
	for _, p := range f.repo.all() {
		links = append(links, p.Link)
	}
	assert.Equal(t, []string{"https://www.instagram.com/p/ONE/", "https://www.instagram.com/p/THREE/"}, links)
}

func TestIngestAccount_PersistFailureContinues(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.repo.createErr["https://www.instagram.com/p/ONE/"] = errStoreDown
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://www.instagram.com/p/ONE/", "https://www.instagram.com/p/TWO/"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, mock.Anything, 3).Return(detail(1), nil)

	res := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, f.repo.all(), 1)
	assert.Equal(t, "https://www.instagram.com/p/TWO/", f.repo.all()[0].Link)
}

func TestIngestAccount_SkipsUnsupportedLinks(t *testing.T) {
	f := newIngestFixture()
	account := &mongo.SocialAccountModel{
		ID:   primitive.NewObjectID(),
		Name: "Acme",
		Links: []mongo.PlatformLink{
			{Platform: "TikTok", URL: "https://www.tiktok.com/@acme"},
			{Platform: "instagram", URL: "https://www.instagram.com/"},
			{Platform: "INSTAGRAM", URL: "https://www.instagram.com/acme_shop"},
		},
	}
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme_shop", 10).Return([]string{}, nil)

	res := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Checked)
	f.scraper.AssertNumberOfCalls(t, "FetchRecentLinks", 1)
}

func TestIngestAccount_LinksFetchFailure(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	account.Links = append(account.Links, mongo.PlatformLink{Platform: "Instagram", URL: "https://www.instagram.com/acme_two/"})
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return(nil, &scraper.FetchError{URL: "links", StatusCode: 502})
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme_two", 10).
		Return([]string{"https://www.instagram.com/p/TWO/"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/TWO/", 3).Return(detail(7), nil)

	res := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Created)
}

func TestRunPass(t *testing.T) {
	f := newIngestFixture()
	acme := acmeAccount()
	other := &mongo.SocialAccountModel{
		ID:    primitive.NewObjectID(),
		Name:  "Other",
		Links: []mongo.PlatformLink{{Platform: "Instagram", URL: "https://instagram.com/other"}},
	}
	f.accounts.On("ListAll", mock.Anything).Return([]*mongo.SocialAccountModel{acme, other}, nil)
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).Return([]string{"https://www.instagram.com/p/A/"}, nil)
	f.scraper.On("FetchRecentLinks", mock.Anything, "other", 10).Return(nil, errors.New("connection refused"))
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/A/", 3).Return(detail(1), nil)

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Accounts, 2)
	assert.Equal(t, "Acme", res.Accounts[0].Account)
	assert.Equal(t, "Other", res.Accounts[1].Account)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.NotEmpty(t, res.FinishedAt)
}

func TestRunPass_ListAccountsFailure(t *testing.T) {
	f := newIngestFixture()
	f.accounts.On("ListAll", mock.Anything).Return(nil, errStoreDown)

	_, err := f.svc.RunPass(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
	f.scraper.AssertNotCalled(t, "FetchRecentLinks", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestAccountByID(t *testing.T) {
	f := newIngestFixture()
	missing := primitive.NewObjectID()
	f.accounts.On("GetByID", mock.Anything, missing).Return(nil, mongoDB.ErrNoDocuments)

	_, err := f.svc.IngestAccountByID(context.Background(), missing.Hex())
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = f.svc.IngestAccountByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestIngestAccount_SeedsHistoryOnNextPass(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://www.instagram.com/p/XYZ789/"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, "https://www.instagram.com/p/XYZ789/", 3).Return(detail(5), nil)

	f.repo.appendErr = errStoreDown
	first := f.svc.IngestAccount(context.Background(), account, 10)
	assert.Equal(t, 1, first.Failed)
	require.Len(t, f.repo.all(), 1)
	assert.Empty(t, f.repo.all()[0].MetricsHistory)

	f.repo.appendErr = nil
	second := f.svc.IngestAccount(context.Background(), account, 10)
	assert.Equal(t, 1, second.Existed)
	assert.Equal(t, 0, second.Created)

	posts := f.repo.all()
	require.Len(t, posts, 1)
	require.Len(t, posts[0].MetricsHistory, 1)
	assert.Equal(t, int64(5), posts[0].MetricsHistory[0].Likes)
	f.scraper.AssertNumberOfCalls(t, "FetchPostDetail", 1)

	third := f.svc.IngestAccount(context.Background(), account, 10)
	assert.Equal(t, 1, third.Existed)
	assert.Len(t, f.repo.all()[0].MetricsHistory, 1)
}

func TestIngestAccount_SeedRetryFailureCountsAsFailed(t *testing.T) {
	f := newIngestFixture()
	account := acmeAccount()
	f.scraper.On("FetchRecentLinks", mock.Anything, "acme", 10).
		Return([]string{"https://www.instagram.com/p/XYZ789/"}, nil)
	f.scraper.On("FetchPostDetail", mock.Anything, mock.Anything, 3).Return(detail(5), nil)

	f.repo.appendErr = errStoreDown
	f.svc.IngestAccount(context.Background(), account, 10)
	res := f.svc.IngestAccount(context.Background(), account, 10)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, res.Existed)
	assert.Len(t, f.repo.all(), 1)
}
