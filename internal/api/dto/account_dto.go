package dto

type PlatformLinkDTO struct {
	Platform string `json:"platform" binding:"required" validate:"required,min=1,max=32"`
	URL      string `json:"url" binding:"required,url" validate:"required,url"`
}

// AccountDTO tracked social account
type AccountDTO struct {
	ID        string            `json:"id" copier:"-"`
	Name      string            `json:"name"`
	Links     []PlatformLinkDTO `json:"links"`
	CreatedAt string            `json:"createdAt" copier:"-"`
	UpdatedAt string            `json:"updatedAt" copier:"-"`
}

type CreateAccountDTO struct {
	Name  string            `json:"name" binding:"required" validate:"required,min=1,max=128"`
	Links []PlatformLinkDTO `json:"links" validate:"dive"`
}

// UpdateAccountDTO nil fields are left untouched, Links replaces the whole list
type UpdateAccountDTO struct {
	Name  *string           `json:"name" validate:"omitempty,min=1,max=128"`
	Links []PlatformLinkDTO `json:"links" validate:"omitempty,dive"`
}
