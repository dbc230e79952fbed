package recipeapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/infrastructure/resilience"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 透過遠端食譜服務解析食譜 ID
type Client struct {
	client  *resty.Client
	breaker *resilience.Breaker
}

// NewClient 創建遠端食譜服務客戶端
func NewClient(cfg config.ResolverConfig, breaker *resilience.Breaker) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client, breaker: breaker}
}

// ResolveRecipes GET /recipes?ids=1,2,3，不存在的 ID 由遠端省略
func (c *Client) ResolveRecipes(ctx context.Context, ids []int64) ([]common.RecipeSummary, error) {
	if len(ids) == 0 {
		return []common.RecipeSummary{}, nil
	}

	var recipes []common.RecipeSummary
	err := c.breaker.Execute(func() error {
		var err error
		recipes, err = c.resolve(ctx, ids)
		return err
	})
	return recipes, err
}

func (c *Client) resolve(ctx context.Context, ids []int64) ([]common.RecipeSummary, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(parts, ",")).
		Get("/recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to recipe service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("食譜服務回應錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.Int("id_count", len(ids)),
		)
		return nil, fmt.Errorf("recipe service returned status %d", resp.StatusCode())
	}

	recipes := make([]common.RecipeSummary, 0, len(ids))
	if err := common.ParseJSONBytes(resp.Body(), &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipe service response: %w", err)
	}
	return recipes, nil
}
