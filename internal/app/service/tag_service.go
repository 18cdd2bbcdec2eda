package service

import (
	"errors"
	"strings"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrTagAlreadyExists = errors.New("tag label already exists")

type TagService interface {
	List() ([]model.Tag, error)
	Create(label string) (*model.Tag, error)
	Delete(id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) List() ([]model.Tag, error) {
	return s.tagRepo.FindAll()
}

func (s *tagService) Create(label string) (*model.Tag, error) {
	label = strings.TrimSpace(strings.ToLower(label))

	existing, err := s.tagRepo.FindByLabel(label)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	tag := &model.Tag{Label: label}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{
		"tag_id": tag.ID,
		"label":  label,
	})
	return tag, nil
}

func (s *tagService) Delete(id uint) error {
	if _, err := s.tagRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return s.tagRepo.Delete(id)
}
