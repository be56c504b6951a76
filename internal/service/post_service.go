package service

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/consts"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/redis"
	"SMMBoard/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type PostService interface {
	// SavePost inserts a post and seeds its metrics history, shared by manual creation and ingestion
	SavePost(ctx context.Context, post *mongo.SmmPostModel) error
	// SeedHistory records the first snapshot of a stored post whose history is still empty
	SeedHistory(ctx context.Context, post *mongo.SmmPostModel) (bool, error)
	CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, query *dto.PostQueryDTO) (*dto.PostPageDTO, error)
	// UpdatePost applies a partial update; a snapshot is appended when counters changed
	UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, id string) error
	GetMetricsHistory(ctx context.Context, id string) (*dto.MetricsHistoryDTO, error)
}

type postServiceImpl struct {
	postRepo   mongo.SmmPostRepo
	recorder   MetricsRecorder
	accountSvc AccountService
	sysBoxSvc  SysBoxService
	cacheTTL   time.Duration
}

func NewPostService(
	postRepo mongo.SmmPostRepo,
	recorder MetricsRecorder,
	accountSvc AccountService,
	sysBoxSvc SysBoxService,
	cfg config.MetricsConfig,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		recorder:   recorder,
		accountSvc: accountSvc,
		sysBoxSvc:  sysBoxSvc,
		cacheTTL:   cfg.CacheTTL,
	}
}

func (s *postServiceImpl) SavePost(ctx context.Context, post *mongo.SmmPostModel) error {
	if err := s.postRepo.Create(ctx, post); err != nil {
		return err
	}
	if err := s.recorder.RecordCreated(ctx, post); err != nil {
		log.ErrorContext(ctx, "seed metrics history failed", "post_id", post.ID.Hex(), "err", err)
		return errors.Join(ErrSnapshotAppend, err)
	}
	return nil
}

func (s *postServiceImpl) SeedHistory(ctx context.Context, post *mongo.SmmPostModel) (bool, error) {
	if len(post.MetricsHistory) > 0 {
		return false, nil
	}
	if err := s.recorder.RecordCreated(ctx, post); err != nil {
		return false, errors.Join(ErrSnapshotAppend, err)
	}
	log.InfoContext(ctx, "metrics history seeded", "post_id", post.ID.Hex())
	return true, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, errors.Join(ErrParamInvalid, err)
	}

	ref, err := s.accountSvc.ResolveRef(ctx, req.Account)
	if err != nil {
		return nil, err
	}

	post := &mongo.SmmPostModel{
		Account:     ref.Name(),
		AccountID:   ref.ID(),
		Link:        util.NormalizePostURL(req.Link),
		Platform:    strings.TrimSpace(req.Platform),
		Likes:       req.Likes,
		Comments:    req.Comments,
		Shares:      req.Shares,
		IsSponsored: req.IsSponsored,
		Date:        req.Date,
		Hour:        req.Hour,
		Type:        req.Type,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Tags:        nonNilStrings(req.Tags),
		Description: req.Description,
		Images:      nonNilStrings(req.Images),
		TopComments: toCommentSnapshots(req.TopComments),
	}
	post.DayOfTheWeek = dayOfWeekOrEmpty(ctx, post.Date)

	if err = s.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post, true), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	post, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post, true), nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, query *dto.PostQueryDTO) (*dto.PostPageDTO, error) {
	page, pageSize, limit, offset := pageBounds(query.Page, query.PageSize)

	list, total, err := s.postRepo.List(ctx, mongo.PostFilter{
		Account:  strings.TrimSpace(query.Account),
		Platform: strings.TrimSpace(query.Platform),
		Category: strings.TrimSpace(query.Category),
	}, limit, offset)
	if err != nil {
		return nil, err
	}

	res := &dto.PostPageDTO{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     make([]*dto.PostDTO, 0, len(list)),
	}
	for _, p := range list {
		res.List = append(res.List, toPostDTO(p, false))
	}
	return res, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, id string, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, errors.Join(ErrParamInvalid, err)
	}

	before, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.updateFields(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return toPostDTO(before, true), nil
	}

	after, err := s.postRepo.Update(ctx, before.ID, fields)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// the update above stays applied even if the snapshot cannot be appended
	changed, err := s.recorder.RecordUpdated(ctx, before, after)
	if err != nil {
		log.ErrorContext(ctx, "append metrics snapshot failed", "post_id", after.ID.Hex(), "err", err)
		return nil, errors.Join(ErrSnapshotAppend, err)
	}

	if changed {
		s.sysBoxSvc.NotifyMetricsChanged(ctx, before, after)
	} else {
		s.sysBoxSvc.NotifyPostUpdated(ctx, after, fieldNames(fields))
	}
	return toPostDTO(after, true), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, id string) error {
	post, err := s.getModel(ctx, id)
	if err != nil {
		return err
	}
	if err = s.postRepo.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}
	_ = redis.DeleteKey(ctx, consts.PostMetricsHistoryKey+post.ID.Hex())
	s.sysBoxSvc.NotifyPostDeleted(ctx, post)
	return nil
}

// GetMetricsHistory cache-aside on redis, the recorder invalidates on append
func (s *postServiceImpl) GetMetricsHistory(ctx context.Context, id string) (*dto.MetricsHistoryDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	key := consts.PostMetricsHistoryKey + oid.Hex()
	var cached dto.MetricsHistoryDTO
	if hit, err := redis.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	history, err := s.postRepo.GetHistory(ctx, oid)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	res := &dto.MetricsHistoryDTO{
		PostID:    oid.Hex(),
		Snapshots: toSnapshotDTOs(history),
	}
	if err = redis.SetJSON(ctx, key, res, s.cacheTTL); err != nil {
		log.WarnContext(ctx, "cache metrics history failed", "post_id", oid.Hex(), "err", err)
	}
	return res, nil
}

func (s *postServiceImpl) getModel(ctx context.Context, id string) (*mongo.SmmPostModel, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postServiceImpl) updateFields(ctx context.Context, req *dto.UpdatePostDTO) (bson.M, error) {
	fields := bson.M{}
	if req.Account != nil {
		ref, err := s.accountSvc.ResolveRef(ctx, *req.Account)
		if err != nil {
			return nil, err
		}
		fields["account"] = ref.Name()
		fields["account_id"] = ref.ID()
	}
	if req.Likes != nil {
		fields["likes"] = *req.Likes
	}
	if req.Comments != nil {
		fields["comments"] = *req.Comments
	}
	if req.Shares != nil {
		fields["shares"] = *req.Shares
	}
	if req.IsSponsored != nil {
		fields["is_sponsored"] = *req.IsSponsored
	}
	if req.Date != nil {
		fields["date"] = *req.Date
		fields["day_of_the_week"] = dayOfWeekOrEmpty(ctx, *req.Date)
	}
	if req.Hour != nil {
		fields["hour"] = *req.Hour
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Category != nil {
		fields["category"] = util.PtrString(*req.Category)
	}
	if req.SubCategory != nil {
		fields["sub_category"] = util.PtrString(*req.SubCategory)
	}
	if req.Tags != nil {
		fields["tags"] = nonNilStrings(*req.Tags)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Images != nil {
		fields["images"] = nonNilStrings(*req.Images)
	}
	if req.TopComments != nil {
		fields["top_comments"] = toCommentSnapshots(*req.TopComments)
	}
	return fields, nil
}

func dayOfWeekOrEmpty(ctx context.Context, date string) string {
	if date == "" {
		return ""
	}
	day, err := util.DayOfWeek(date)
	if err != nil {
		log.DebugContext(ctx, "day of week omitted", "err", err)
		return ""
	}
	return day
}

func fieldNames(fields bson.M) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	return names
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toCommentSnapshots(list []dto.CommentDTO) []mongo.CommentSnapshot {
	res := make([]mongo.CommentSnapshot, 0, len(list))
	for _, c := range list {
		res = append(res, mongo.CommentSnapshot{Username: c.Username, Text: c.Text, Likes: c.Likes})
	}
	return res
}

func toSnapshotDTOs(history []mongo.MetricsSnapshot) []dto.MetricsSnapshotDTO {
	res := make([]dto.MetricsSnapshotDTO, 0, len(history))
	for _, h := range history {
		res = append(res, dto.MetricsSnapshotDTO{
			Timestamp: h.Timestamp.UTC().Format(time.RFC3339Nano),
			Likes:     h.Likes,
			Comments:  h.Comments,
			Shares:    h.Shares,
		})
	}
	return res
}

func toPostDTO(p *mongo.SmmPostModel, withHistory bool) *dto.PostDTO {
	d := &dto.PostDTO{}
	_ = copier.Copy(d, p)
	d.ID = p.ID.Hex()
	d.AccountTracked = p.AccountID != nil
	if p.AccountID != nil {
		d.AccountID = p.AccountID.Hex()
	}
	d.CreatedAt = formatTime(p.CreatedAt)
	d.UpdatedAt = formatTime(p.UpdatedAt)
	d.Tags = nonNilStrings(p.Tags)
	d.Images = nonNilStrings(p.Images)
	d.MetricsHistory = nil
	if withHistory {
		d.MetricsHistory = toSnapshotDTOs(p.MetricsHistory)
	}
	return d
}
