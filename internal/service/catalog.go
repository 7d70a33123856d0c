package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/shopkit/storefront-api/internal/dto"
	"github.com/shopkit/storefront-api/internal/model"
	"github.com/shopkit/storefront-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPrice    = errors.New("invalid price value")
)

const productCacheTTL = 60 * time.Second

type CatalogService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	redisClient *redis.Client
}

func NewCatalogService(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository, redisClient *redis.Client) *CatalogService {
	return &CatalogService{productRepo: productRepo, reviewRepo: reviewRepo, redisClient: redisClient}
}

func (s *CatalogService) List(ctx context.Context, req dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	category := model.Category(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}

	sort, desc := parseOrdering(req.Ordering)
	filter := repository.ProductFilter{
		Category: category,
		Search:   req.Search,
		Sort:     sort,
		Desc:     desc,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
	}
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return listResponse(products, total, req.Page, req.Limit), nil
}

func (s *CatalogService) Search(ctx context.Context, req dto.SearchProductsRequest) (*dto.ProductListResponse, error) {
	category := model.Category(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}
	minPrice, err := parsePrice(req.MinPrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := parsePrice(req.MaxPrice)
	if err != nil {
		return nil, err
	}

	filter := repository.ProductFilter{
		Category: category,
		Search:   req.Query,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     "created_at",
		Desc:     true,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
	}
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return listResponse(products, total, req.Page, req.Limit), nil
}

// GetDetail returns the full product view with its reviews and the mean
// rating (0 when unreviewed).
func (s *CatalogService) GetDetail(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error) {
	cacheKey := "product_detail:" + id.String()
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ProductDetailResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	resp := &dto.ProductDetailResponse{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		Category:       string(product.Category),
		Specifications: product.Specifications,
		Images:         product.Images,
		StockCount:     product.StockCount,
		Rating:         meanRating(reviews),
		Reviews:        make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, rv := range reviews {
		resp.Reviews = append(resp.Reviews, dto.ReviewResponse{
			User: rv.UserName, Rating: rv.Rating, Comment: rv.Comment, Date: rv.CreatedAt,
		})
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return resp, nil
}

func (s *CatalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductSummary, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx, product.ID)
	resp := toProductSummary(product)
	return &resp, nil
}

// BulkCreate validates every document up front and inserts the batch in one
// transaction, so a bad document leaves nothing behind.
func (s *CatalogService) BulkCreate(ctx context.Context, reqs []dto.CreateProductRequest) ([]dto.ProductSummary, error) {
	products := make([]*model.Product, 0, len(reqs))
	for _, req := range reqs {
		product, err := productFromRequest(req)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := s.productRepo.BulkCreate(ctx, products); err != nil {
		return nil, fmt.Errorf("bulk create: %w", err)
	}

	invalidateDashboard(ctx, s.redisClient)
	summaries := make([]dto.ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, toProductSummary(p))
	}
	return summaries, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductSummary, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *req.Category)
		}
		product.Category = category
	}
	if req.Thumbnail != nil {
		product.Thumbnail = req.Thumbnail
	}
	if req.StockCount != nil {
		product.StockCount = *req.StockCount
	}
	if req.Specifications != nil {
		product.Specifications = req.Specifications
	}
	if req.Images != nil {
		product.Images = req.Images
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, id)
	resp := toProductSummary(product)
	return &resp, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) AddReview(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, req dto.CreateReviewRequest) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	s.invalidate(ctx, productID)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, "product_detail:"+id.String())
	}
	invalidateDashboard(ctx, s.redisClient)
}

func productFromRequest(req dto.CreateProductRequest) (*model.Product, error) {
	category := model.Category(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}
	return &model.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       category,
		Thumbnail:      req.Thumbnail,
		StockCount:     req.StockCount,
		Specifications: req.Specifications,
		Images:         req.Images,
	}, nil
}

// parseOrdering accepts a field name with an optional leading '-' for
// descending order. Unknown fields fall back to newest-first.
func parseOrdering(ordering string) (field string, desc bool) {
	field = ordering
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}
	switch field {
	case "name", "price", "created_at":
		return field, desc
	}
	return "created_at", true
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrice, raw)
	}
	return &d, nil
}

func meanRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func listResponse(products []model.Product, total, page, limit int) *dto.ProductListResponse {
	items := make([]dto.ProductSummary, 0, len(products))
	for i := range products {
		items = append(items, toProductSummary(&products[i]))
	}
	return &dto.ProductListResponse{Products: items, Total: total, Page: page, Limit: limit}
}

func toProductSummary(p *model.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Category:   string(p.Category),
		Thumbnail:  p.Thumbnail,
		InStock:    p.InStock(),
		StockCount: p.StockCount,
	}
}
