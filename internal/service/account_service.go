package service

import (
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/pkg/util"
	"context"
	"errors"
	"strings"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// AccountRef names the account a post belongs to: either a tracked account
// (Known) or a free-text name that is not tracked yet (Freeform).
type AccountRef struct {
	id   *primitive.ObjectID
	name string
}

func KnownAccount(id primitive.ObjectID, name string) AccountRef {
	return AccountRef{id: &id, name: name}
}

func FreeformAccount(name string) AccountRef {
	return AccountRef{name: name}
}

func (r AccountRef) IsKnown() bool {
	return r.id != nil
}

// ID nil for a freeform reference
func (r AccountRef) ID() *primitive.ObjectID {
	return r.id
}

func (r AccountRef) Name() string {
	return r.name
}

type AccountService interface {
	CreateAccount(ctx context.Context, req *dto.CreateAccountDTO) (*dto.AccountDTO, error)
	GetAccount(ctx context.Context, id string) (*dto.AccountDTO, error)
	ListAccounts(ctx context.Context) ([]*dto.AccountDTO, error)
	UpdateAccount(ctx context.Context, id string, req *dto.UpdateAccountDTO) (*dto.AccountDTO, error)
	// ResolveRef validates an account name at write time
	ResolveRef(ctx context.Context, name string) (AccountRef, error)
}

type accountServiceImpl struct {
	accountRepo mongo.SocialAccountRepo
}

func NewAccountService(accountRepo mongo.SocialAccountRepo) AccountService {
	return &accountServiceImpl{
		accountRepo: accountRepo,
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req *dto.CreateAccountDTO) (*dto.AccountDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateDTO(req); err != nil {
		return nil, errors.Join(ErrParamInvalid, err)
	}

	account := &mongo.SocialAccountModel{
		Name:  req.Name,
		Links: toPlatformLinks(req.Links),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if mongoDB.IsDuplicateKeyError(err) {
			return nil, ErrAccountExist
		}
		return nil, err
	}
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) GetAccount(ctx context.Context, id string) (*dto.AccountDTO, error) {
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
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context) ([]*dto.AccountDTO, error) {
	list, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AccountDTO, 0, len(list))
	for _, a := range list {
		res = append(res, toAccountDTO(a))
	}
	return res, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, id string, req *dto.UpdateAccountDTO) (*dto.AccountDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err = util.ValidateDTO(req); err != nil {
		return nil, errors.Join(ErrParamInvalid, err)
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Links != nil {
		fields["links"] = toPlatformLinks(req.Links)
	}
	if len(fields) == 0 {
		return s.GetAccount(ctx, id)
	}

	account, err := s.accountRepo.Update(ctx, oid, fields)
	if err != nil {
		switch {
		case errors.Is(err, mongoDB.ErrNoDocuments):
			return nil, ErrAccountNotFound
		case mongoDB.IsDuplicateKeyError(err):
			return nil, ErrAccountExist
		}
		return nil, err
	}
	return toAccountDTO(account), nil
}

func (s *accountServiceImpl) ResolveRef(ctx context.Context, name string) (AccountRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AccountRef{}, ErrParamInvalid
	}
	account, err := s.accountRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return FreeformAccount(name), nil
		}
		return AccountRef{}, err
	}
	return KnownAccount(account.ID, account.Name), nil
}

func toPlatformLinks(links []dto.PlatformLinkDTO) []mongo.PlatformLink {
	res := make([]mongo.PlatformLink, 0, len(links))
	for _, l := range links {
		res = append(res, mongo.PlatformLink{
			Platform: strings.TrimSpace(l.Platform),
			URL:      strings.TrimSpace(l.URL),
		})
	}
	return res
}

func toAccountDTO(a *mongo.SocialAccountModel) *dto.AccountDTO {
	d := &dto.AccountDTO{}
	_ = copier.Copy(d, a)
	d.ID = a.ID.Hex()
	d.CreatedAt = formatTime(a.CreatedAt)
	d.UpdatedAt = formatTime(a.UpdatedAt)
	if d.Links == nil {
		d.Links = []dto.PlatformLinkDTO{}
	}
	return d
}
