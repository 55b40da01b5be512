package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/cache"
	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/validation"
)

const (
	msgFoodNotFound  = "Food item not found"
	msgThemeNotFound = "Theme not found"
)

// FoodService implements the food catalog.
type FoodService struct {
	foods FoodStore
	v     *validation.Validator
	cache cache.Invalidator
	log   *zap.Logger
}

func NewFoodService(foods FoodStore, v *validation.Validator, inv cache.Invalidator, log *zap.Logger) *FoodService {
	return &FoodService{foods: foods, v: v, cache: inv, log: log}
}

func (s *FoodService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.TagFoods); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("tag", cache.TagFoods), zap.Error(err))
	}
}

func (s *FoodService) foodError(action string, id uint64, err error) error {
	if errors.Is(err, repository.ErrFoodItemNotFound) {
		return notFound(msgFoodNotFound)
	}
	return failure(s.log, action, err, zap.Uint64("food_id", id))
}

func (s *FoodService) list(ctx context.Context, q dto.FoodListQuery, onlyAvailable bool) ([]*model.FoodItem, error) {
	if err := validate(s.v, q); err != nil {
		return nil, err
	}
	items, err := s.foods.List(ctx, model.FoodFilter{Category: model.FoodCategory(q.Category), OnlyAvailable: onlyAvailable})
	if err != nil {
		return nil, failure(s.log, "fetch food items", err)
	}
	return items, nil
}

// ListAvailable returns the orderable items, optionally in one category.
func (s *FoodService) ListAvailable(ctx context.Context, q dto.FoodListQuery) ([]*model.FoodItem, error) {
	return s.list(ctx, q, true)
}

// ListAll returns every item, optionally in one category.
func (s *FoodService) ListAll(ctx context.Context, q dto.FoodListQuery) ([]*model.FoodItem, error) {
	return s.list(ctx, q, false)
}

func (s *FoodService) Get(ctx context.Context, id uint64) (*model.FoodItem, error) {
	f, err := s.foods.GetByID(ctx, id)
	if err != nil {
		return nil, s.foodError("fetch food item", id, err)
	}
	return f, nil
}

func (s *FoodService) Create(ctx context.Context, req dto.CreateFoodItemRequest) (*model.FoodItem, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	f := &model.FoodItem{
		Name:        req.Name,
		Category:    model.FoodCategory(req.Category),
		Price:       req.Price,
		IsVeg:       req.IsVeg,
		Description: req.Description,
		Image:       req.Image,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		f.IsAvailable = *req.IsAvailable
	}
	if err := s.foods.Create(ctx, f); err != nil {
		return nil, failure(s.log, "create food item", err)
	}
	s.invalidate(ctx)
	return f, nil
}

func (s *FoodService) Update(ctx context.Context, id uint64, req dto.UpdateFoodItemRequest) (*model.FoodItem, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	f, err := s.foods.GetByID(ctx, id)
	if err != nil {
		return nil, s.foodError("update food item", id, err)
	}
	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Category != nil {
		f.Category = model.FoodCategory(*req.Category)
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.IsVeg != nil {
		f.IsVeg = *req.IsVeg
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Image != nil {
		f.Image = *req.Image
	}
	if req.IsAvailable != nil {
		f.IsAvailable = *req.IsAvailable
	}
	if err := s.foods.Update(ctx, f); err != nil {
		return nil, s.foodError("update food item", id, err)
	}
	s.invalidate(ctx)
	return f, nil
}

func (s *FoodService) Delete(ctx context.Context, id uint64) (string, error) {
	if err := s.foods.Delete(ctx, id); err != nil {
		return "", s.foodError("delete food item", id, err)
	}
	s.invalidate(ctx)
	return "Food item deleted successfully", nil
}

func (s *FoodService) ToggleAvailability(ctx context.Context, id uint64) (*model.FoodItem, error) {
	f, err := s.foods.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, s.foodError("update food item", id, err)
	}
	s.invalidate(ctx)
	return f, nil
}

// ThemeService implements the theme catalog.
type ThemeService struct {
	themes ThemeStore
	v      *validation.Validator
	cache  cache.Invalidator
	log    *zap.Logger
}

func NewThemeService(themes ThemeStore, v *validation.Validator, inv cache.Invalidator, log *zap.Logger) *ThemeService {
	return &ThemeService{themes: themes, v: v, cache: inv, log: log}
}

func (s *ThemeService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.TagThemes); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("tag", cache.TagThemes), zap.Error(err))
	}
}

func (s *ThemeService) themeError(action string, id uint64, err error) error {
	if errors.Is(err, repository.ErrThemeNotFound) {
		return notFound(msgThemeNotFound)
	}
	return failure(s.log, action, err, zap.Uint64("theme_id", id))
}

func (s *ThemeService) ListAvailable(ctx context.Context) ([]*model.Theme, error) {
	themes, err := s.themes.List(ctx, true)
	if err != nil {
		return nil, failure(s.log, "fetch themes", err)
	}
	return themes, nil
}

func (s *ThemeService) ListAll(ctx context.Context) ([]*model.Theme, error) {
	themes, err := s.themes.List(ctx, false)
	if err != nil {
		return nil, failure(s.log, "fetch themes", err)
	}
	return themes, nil
}

func (s *ThemeService) Get(ctx context.Context, id uint64) (*model.Theme, error) {
	t, err := s.themes.GetByID(ctx, id)
	if err != nil {
		return nil, s.themeError("fetch theme", id, err)
	}
	return t, nil
}

func (s *ThemeService) Create(ctx context.Context, req dto.CreateThemeRequest) (*model.Theme, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	t := &model.Theme{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		t.IsAvailable = *req.IsAvailable
	}
	if err := s.themes.Create(ctx, t); err != nil {
		return nil, failure(s.log, "create theme", err)
	}
	s.invalidate(ctx)
	return t, nil
}

func (s *ThemeService) Update(ctx context.Context, id uint64, req dto.UpdateThemeRequest) (*model.Theme, error) {
	if err := validate(s.v, req); err != nil {
		return nil, err
	}
	t, err := s.themes.GetByID(ctx, id)
	if err != nil {
		return nil, s.themeError("update theme", id, err)
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Images != nil {
		t.Images = *req.Images
	}
	if req.IsAvailable != nil {
		t.IsAvailable = *req.IsAvailable
	}
	if err := s.themes.Update(ctx, t); err != nil {
		return nil, s.themeError("update theme", id, err)
	}
	s.invalidate(ctx)
	return t, nil
}

func (s *ThemeService) Delete(ctx context.Context, id uint64) (string, error) {
	if err := s.themes.Delete(ctx, id); err != nil {
		return "", s.themeError("delete theme", id, err)
	}
	s.invalidate(ctx)
	return "Theme deleted successfully", nil
}

func (s *ThemeService) ToggleAvailability(ctx context.Context, id uint64) (*model.Theme, error) {
	t, err := s.themes.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, s.themeError("update theme", id, err)
	}
	s.invalidate(ctx)
	return t, nil
}
