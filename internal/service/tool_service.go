package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
	es "github.com/sortmyai/sortmyai-backend/pkg/elasticsearch"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
)

// ToolsIndex is the Elasticsearch index for the tool catalog
const ToolsIndex = "sortmyai_tools"

// ToolDocument is a tool as indexed in Elasticsearch
type ToolDocument struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Pricing     string `json:"pricing"`
	Description string `json:"description"`
	Upvotes     int    `json:"upvotes"`
	CreatedAt   string `json:"created_at"`
}

// ToolService AI tool catalog business logic
type ToolService interface {
	Submit(ctx context.Context, submitterUID string, req *domain.SubmitToolRequest) (*domain.ToolResponse, error)
	GetBySlug(ctx context.Context, slug, viewerUID string) (*domain.ToolResponse, error)
	List(ctx context.Context, category string, page, limit int) ([]*domain.ToolResponse, *common.Meta, error)
	Search(ctx context.Context, query string, page, limit int) ([]*domain.ToolResponse, *common.Meta, error)
	Upvote(ctx context.Context, slug, voterUID string) error
	RemoveUpvote(ctx context.Context, slug, voterUID string) error
}

type toolService struct {
	repo     repository.ToolRepository
	awards   GamificationService
	esClient *es.Client
	cache    pkgcache.Service
}

// NewToolService creates a new ToolService. esClient may be nil; search
// then falls back to a database LIKE query.
func NewToolService(repo repository.ToolRepository, awards GamificationService, esClient *es.Client, cache pkgcache.Service) ToolService {
	svc := &toolService{
		repo:     repo,
		awards:   awards,
		esClient: esClient,
		cache:    cache,
	}
	if esClient != nil {
		if err := svc.ensureIndex(context.Background()); err != nil {
			pkglogger.GetLogger().Error().Err(err).Msg("failed to create tools index")
		}
	}
	return svc
}

func (s *toolService) ensureIndex(ctx context.Context) error {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "text"},
				"category":    map[string]interface{}{"type": "keyword"},
				"pricing":     map[string]interface{}{"type": "keyword"},
				"description": map[string]interface{}{"type": "text"},
				"upvotes":     map[string]interface{}{"type": "integer"},
				"created_at":  map[string]interface{}{"type": "date"},
			},
		},
	}
	return s.esClient.CreateIndex(ctx, ToolsIndex, mapping)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *toolService) Submit(ctx context.Context, submitterUID string, req *domain.SubmitToolRequest) (*domain.ToolResponse, error) {
	slug := slugify(req.Name)
	if slug == "" {
		return nil, common.ErrInvalidInput
	}

	if existing, err := s.repo.FindBySlug(slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, common.ErrInvalidInput
	}

	tool := &domain.Tool{
		ID:           uuid.New().String(),
		Slug:         slug,
		Name:         req.Name,
		Category:     strings.ToLower(req.Category),
		Pricing:      req.Pricing,
		URL:          req.URL,
		Description:  req.Description,
		SubmitterUID: submitterUID,
	}

	if err := s.repo.Create(tool); err != nil {
		return nil, err
	}

	s.indexTool(ctx, tool)
	if s.cache != nil {
		_ = s.cache.InvalidateTools(ctx)
	}

	if s.awards != nil {
		if err := s.awards.AwardToolSubmitted(ctx, submitterUID, tool.ID); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("uid", submitterUID).
				Msg("tool submission award failed")
		}
	}

	return tool.ToResponse(), nil
}

func (s *toolService) GetBySlug(ctx context.Context, slug, viewerUID string) (*domain.ToolResponse, error) {
	tool, err := s.repo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, common.ErrToolNotFound
	}

	resp := tool.ToResponse()
	if viewerUID != "" {
		upvoted, err := s.repo.HasUpvoted(tool.ID, viewerUID)
		if err == nil {
			resp.Upvoted = upvoted
		}
	}
	return resp, nil
}

// toolPage is the cached shape of one catalog page
type toolPage struct {
	Tools []*domain.ToolResponse `json:"tools"`
	Meta  *common.Meta           `json:"meta"`
}

func (s *toolService) List(ctx context.Context, category string, page, limit int) ([]*domain.ToolResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	if s.cache != nil {
		if data, err := s.cache.GetTools(ctx, category, page, limit); err == nil && data != nil {
			var cached toolPage
			if json.Unmarshal(data, &cached) == nil {
				return cached.Tools, cached.Meta, nil
			}
		}
	}

	tools, total, err := s.repo.List(category, page, limit)
	if err != nil {
		return nil, nil, err
	}

	result := &toolPage{
		Tools: toToolResponses(tools),
		Meta:  &common.Meta{Page: page, Limit: limit, Total: total},
	}
	if s.cache != nil {
		_ = s.cache.SetTools(ctx, category, page, limit, result)
	}
	return result.Tools, result.Meta, nil
}

// Search goes through Elasticsearch when available; the database LIKE
// fallback keeps the endpoint working without it
func (s *toolService) Search(ctx context.Context, query string, page, limit int) ([]*domain.ToolResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	if s.esClient == nil {
		tools, total, err := s.repo.SearchLike(query, page, limit)
		if err != nil {
			return nil, nil, err
		}
		return toToolResponses(tools), &common.Meta{Page: page, Limit: limit, Total: total}, nil
	}

	esQuery := map[string]interface{}{
		"from": (page - 1) * limit,
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "category^2", "description"},
			},
		},
	}

	result, err := s.esClient.Search(ctx, ToolsIndex, esQuery)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("es search failed, falling back to database")
		tools, total, dbErr := s.repo.SearchLike(query, page, limit)
		if dbErr != nil {
			return nil, nil, dbErr
		}
		return toToolResponses(tools), &common.Meta{Page: page, Limit: limit, Total: total}, nil
	}

	tools, err := s.repo.FindByIDs(result.IDs)
	if err != nil {
		return nil, nil, err
	}

	// Preserve relevance order from Elasticsearch
	byID := make(map[string]*domain.Tool, len(tools))
	for _, t := range tools {
		byID[t.ID] = t
	}
	ordered := make([]*domain.Tool, 0, len(result.IDs))
	for _, id := range result.IDs {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}

	return toToolResponses(ordered), &common.Meta{Page: page, Limit: limit, Total: result.Total}, nil
}

func (s *toolService) Upvote(ctx context.Context, slug, voterUID string) error {
	tool, err := s.repo.FindBySlug(slug)
	if err != nil {
		return err
	}
	if tool == nil {
		return common.ErrToolNotFound
	}

	if err := s.repo.AddUpvote(tool.ID, voterUID); err != nil {
		return err
	}

	tool.UpvotesCount++
	s.indexTool(ctx, tool)
	if s.cache != nil {
		_ = s.cache.InvalidateTools(ctx)
	}
	return nil
}

func (s *toolService) RemoveUpvote(ctx context.Context, slug, voterUID string) error {
	tool, err := s.repo.FindBySlug(slug)
	if err != nil {
		return err
	}
	if tool == nil {
		return common.ErrToolNotFound
	}

	if err := s.repo.RemoveUpvote(tool.ID, voterUID); err != nil {
		return err
	}

	tool.UpvotesCount--
	s.indexTool(ctx, tool)
	if s.cache != nil {
		_ = s.cache.InvalidateTools(ctx)
	}
	return nil
}

func (s *toolService) indexTool(ctx context.Context, tool *domain.Tool) {
	if s.esClient == nil {
		return
	}
	doc := &ToolDocument{
		Name:        tool.Name,
		Category:    tool.Category,
		Pricing:     tool.Pricing,
		Description: tool.Description,
		Upvotes:     tool.UpvotesCount,
		CreatedAt:   tool.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if err := s.esClient.IndexDocument(ctx, ToolsIndex, tool.ID, doc); err != nil {
		pkglogger.GetLogger().Warn().Err(err).
			Str("tool_id", tool.ID).
			Msg("tool indexing failed")
	}
}

func toToolResponses(tools []*domain.Tool) []*domain.ToolResponse {
	responses := make([]*domain.ToolResponse, len(tools))
	for i, t := range tools {
		responses[i] = t.ToResponse()
	}
	return responses
}
