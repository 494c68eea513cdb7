// Package catalog reads products from the platform API, degrading to canned
// sample data when the backend is unreachable so browsing keeps working
// offline.
package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/fashionkart/storefront/internal/api"
	"github.com/fashionkart/storefront/internal/domain"
	apperrors "github.com/fashionkart/storefront/pkg/errors"
	"github.com/fashionkart/storefront/pkg/pagination"
	"github.com/fashionkart/storefront/pkg/slug"
)

// Sort orders accepted by List.
const (
	SortPopularity = "popularity"
	SortNewest     = "newest"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
)

// Query narrows a product listing. Category and Brand accept comma-separated
// lists; matching is case-insensitive on slugs.
type Query struct {
	Search   string
	Category string
	Brand    string
	Sort     string
	Page     pagination.Params
}

// ListResult is a product page plus a flag reporting whether it was served
// from the local sample set because the backend was unreachable.
type ListResult struct {
	Products pagination.Result[domain.Product] `json:"products"`
	Fallback bool                              `json:"fallback"`
}

// Service is the catalog client.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates a catalog service over the platform API client.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// List fetches a product page. Any non-OK platform answer (including the
// synthesized 503 for an unreachable backend) falls back to the sample set
// with the same filtering, sorting, and pagination applied locally.
func (s *Service) List(ctx context.Context, q Query) (*ListResult, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Brand != "" {
		params.Set("brand", q.Brand)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	params.Set("page", strconv.Itoa(q.Page.Page))
	params.Set("limit", strconv.Itoa(q.Page.PerPage))

	resp := s.client.Get(ctx, "/consumer/products?"+params.Encode())
	if !resp.OK {
		s.logger.Info("serving sample catalog, backend not available",
			slog.Int("status", resp.Status),
		)
		return s.listSamples(q), nil
	}

	products, total, err := decodeProducts(resp)
	if err != nil {
		return nil, apperrors.Wrap(err, "decode product listing")
	}
	if total == 0 {
		total = len(products)
	}

	return &ListResult{
		Products: pagination.NewResult(products, total, q.Page),
	}, nil
}

// Get fetches one product by id, falling back to the sample set.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, bool, error) {
	resp := s.client.Get(ctx, "/consumer/products")
	if !resp.OK {
		for _, p := range SampleProducts {
			if p.ID == id {
				return &p, true, nil
			}
		}
		return nil, true, apperrors.NotFound("product", id)
	}

	products, _, err := decodeProducts(resp)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "decode product listing")
	}
	for _, p := range products {
		if p.ID == id {
			return &p, false, nil
		}
	}
	return nil, false, apperrors.NotFound("product", id)
}

// listSamples applies the query to the canned sample set.
func (s *Service) listSamples(q Query) *ListResult {
	filtered := make([]domain.Product, 0, len(SampleProducts))

	categories := slugSet(q.Category)
	brands := slugSet(q.Brand)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range SampleProducts {
		if len(categories) > 0 && !matchesAny(p.Category, categories) {
			continue
		}
		if len(brands) > 0 && !matchesAny(p.Brand, brands) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].UnitPrice() < filtered[j].UnitPrice()
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].UnitPrice() > filtered[j].UnitPrice()
		})
	case SortNewest:
		// The sample set is ordered oldest-first.
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}

	page := pagination.Slice(filtered, q.Page)
	return &ListResult{
		Products: pagination.NewResult(page, len(filtered), q.Page),
		Fallback: true,
	}
}

func slugSet(csv string) map[string]struct{} {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, part := range strings.Split(csv, ",") {
		if v := slug.Generate(part); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func matchesAny(value string, set map[string]struct{}) bool {
	v := slug.Generate(value)
	for want := range set {
		if strings.Contains(v, want) {
			return true
		}
	}
	return false
}

func matchesSearch(p domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Brand), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

// decodeProducts accepts both listing shapes the platform has served:
// an envelope {"products": [...], "total": n} and a bare array.
func decodeProducts(resp *api.Response) ([]domain.Product, int, error) {
	var envelope struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}
	if err := resp.JSON(&envelope); err == nil && envelope.Products != nil {
		return envelope.Products, envelope.Total, nil
	}

	var bare []domain.Product
	if err := resp.JSON(&bare); err != nil {
		return nil, 0, err
	}
	return bare, 0, nil
}

