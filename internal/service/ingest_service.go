package service

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/logger"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/scraper"
	"SMMBoard/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// IngestService polls the scraping service for new posts of tracked accounts.
// Failures are contained per link: they are logged and counted, never abort the pass.
type IngestService interface {
	// RunPass ingests every tracked account in store order; only listing the accounts can fail
	RunPass(ctx context.Context) (*dto.IngestResultDTO, error)
	// IngestAccount checks the n most recent posts of each Instagram link of account
	IngestAccount(ctx context.Context, account *mongo.SocialAccountModel, n int) *dto.AccountIngestDTO
	IngestAccountByID(ctx context.Context, id string) (*dto.AccountIngestDTO, error)
}

type ingestServiceImpl struct {
	accountRepo mongo.SocialAccountRepo
	postRepo    mongo.SmmPostRepo
	postSvc     PostService
	sysBoxSvc   SysBoxService
	scraper     scraper.Client
	recentPosts int
	topComments int
}

func NewIngestService(
	accountRepo mongo.SocialAccountRepo,
	postRepo mongo.SmmPostRepo,
	postSvc PostService,
	sysBoxSvc SysBoxService,
	scraperClient scraper.Client,
	ingestCfg config.IngestConfig,
	scraperCfg config.ScraperConfig,
) IngestService {
	recent := ingestCfg.RecentPosts
	if recent <= 0 {
		recent = 10
	}
	return &ingestServiceImpl{
		accountRepo: accountRepo,
		postRepo:    postRepo,
		postSvc:     postSvc,
		sysBoxSvc:   sysBoxSvc,
		scraper:     scraperClient,
		recentPosts: recent,
		topComments: scraperCfg.TopCommentsCount,
	}
}

func (s *ingestServiceImpl) RunPass(ctx context.Context) (*dto.IngestResultDTO, error) {
	started := time.Now()

	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "ingest pass aborted, list accounts failed", "err", err)
		return nil, err
	}

	res := &dto.IngestResultDTO{
		TraceID:   logger.TraceID(ctx),
		StartedAt: formatTime(started),
		Accounts:  make([]*dto.AccountIngestDTO, 0, len(accounts)),
	}
	for _, account := range accounts {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "ingest pass interrupted", "err", ctx.Err())
			break
		}
		r := s.IngestAccount(ctx, account, s.recentPosts)
		res.Accounts = append(res.Accounts, r)
		res.Created += r.Created
		res.Failed += r.Failed
	}
	res.FinishedAt = formatTime(time.Now())

	log.InfoContext(ctx, "ingest pass finished",
		"accounts", len(accounts),
		"created", res.Created,
		"failed", res.Failed,
		"latency", time.Since(started))
	return res, nil
}

func (s *ingestServiceImpl) IngestAccountByID(ctx context.Context, id string) (*dto.AccountIngestDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.IngestAccount(ctx, account, s.recentPosts), nil
}

func (s *ingestServiceImpl) IngestAccount(ctx context.Context, account *mongo.SocialAccountModel, n int) *dto.AccountIngestDTO {
	res := &dto.AccountIngestDTO{Account: account.Name}

	for _, link := range account.Links {
		if !strings.EqualFold(strings.TrimSpace(link.Platform), mongo.PlatformInstagram) {
			log.InfoContext(ctx, "skip link, platform not supported by ingestion",
				"account", account.Name, "platform", link.Platform, "url", link.URL)
			res.Skipped++
			continue
		}

		username, err := util.ExtractUsername(link.URL)
		if err != nil {
			log.WarnContext(ctx, "skip link, no username in profile url",
				"account", account.Name, "url", link.URL, "err", err)
			res.Skipped++
			continue
		}

		rawLinks, err := s.scraper.FetchRecentLinks(ctx, username, n)
		if err != nil {
			log.WarnContext(ctx, "fetch recent post links failed",
				"account", account.Name, "username", username, "err", err)
			res.Failed++
			continue
		}

		for _, raw := range rawLinks {
			res.Checked++
			switch err = s.ingestLink(ctx, account, raw); {
			case err == nil:
				res.Created++
			case errors.Is(err, errPostExists):
				res.Existed++
			default:
				res.Failed++
			}
		}
	}

	log.InfoContext(ctx, "account ingested",
		"account", res.Account,
		"checked", res.Checked,
		"existed", res.Existed,
		"created", res.Created,
		"failed", res.Failed,
		"skipped", res.Skipped)
	return res
}

var errPostExists = errors.New("post already stored")

// ingestLink stores one post if its canonical link is new; errors are logged here
func (s *ingestServiceImpl) ingestLink(ctx context.Context, account *mongo.SocialAccountModel, raw string) error {
	link := util.NormalizePostURL(raw)

	existing, err := s.postRepo.FindByLink(ctx, link)
	switch {
	case err == nil:
		// a post whose seed snapshot failed on an earlier pass gets it now
		if _, err = s.postSvc.SeedHistory(ctx, existing); err != nil {
			log.ErrorContext(ctx, "seed metrics history of stored post failed", "account", account.Name, "link", link, "err", err)
			return err
		}
		return errPostExists
	case !errors.Is(err, mongoDB.ErrNoDocuments):
		log.ErrorContext(ctx, "check post existence failed", "account", account.Name, "link", link, "err", err)
		return err
	}

	detail, err := s.scraper.FetchPostDetail(ctx, link, s.topComments)
	if err != nil {
		log.WarnContext(ctx, "fetch post detail failed", "account", account.Name, "link", link, "err", err)
		return err
	}

	post := buildPost(ctx, account, link, detail)
	if err = s.postSvc.SavePost(ctx, post); err != nil {
		log.ErrorContext(ctx, "persist post failed", "account", account.Name, "link", link, "err", err)
		if errors.Is(err, ErrSnapshotAppend) {
			// the post itself is stored, the next pass finds it and seeds the history
			s.sysBoxSvc.NotifyNewPost(ctx, post)
		}
		return err
	}

	s.sysBoxSvc.NotifyNewPost(ctx, post)
	log.InfoContext(ctx, "post ingested", "account", account.Name, "link", link, "post_id", post.ID.Hex())
	return nil
}

func buildPost(ctx context.Context, account *mongo.SocialAccountModel, link string, detail *scraper.PostDetail) *mongo.SmmPostModel {
	accountID := account.ID
	post := &mongo.SmmPostModel{
		Account:     account.Name,
		AccountID:   &accountID,
		Link:        link,
		Platform:    mongo.PlatformInstagram,
		Likes:       detail.Likes,
		Comments:    detail.Comments,
		Shares:      detail.Shares,
		IsSponsored: false,
		Date:        detail.Date,
		Hour:        detail.Hour,
		Category:    nil,
		SubCategory: nil,
		Tags:        []string{},
		Description: detail.Description,
		Images:      detail.Images(),
		TopComments: make([]mongo.CommentSnapshot, 0, len(detail.TopComments)),
	}
	for _, c := range detail.TopComments {
		post.TopComments = append(post.TopComments, mongo.CommentSnapshot{
			Username: c.Username,
			Text:     c.Text,
			Likes:    c.Likes,
		})
	}
	post.DayOfTheWeek = dayOfWeekOrEmpty(ctx, detail.Date)
	return post
}
