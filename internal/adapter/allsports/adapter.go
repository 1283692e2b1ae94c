package allsports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"BestXI/internal/adapter"
	"BestXI/internal/config"
	"BestXI/internal/interfaces"
	"BestXI/internal/model"
	"BestXI/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const FeedName = "allsports"

func init() {
	adapter.Register(FeedName, NewAllSportsAdapter)
}

// Adapter AllSportsAPI Livescore（仅返回进行中的比赛）
type Adapter struct {
	cfg        *config.FeedConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAllSportsAdapter(cfg *config.FeedConfig, logger *logrus.Logger) interfaces.FeedAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return FeedName
}

func (a *Adapter) FetchMatches(ctx context.Context) ([]model.RawMatch, error) {
	query := url.Values{"met": {"Livescore"}, "APIkey": {a.cfg.APIKey}}
	reqURL := fmt.Sprintf("%s/?%s", strings.TrimSuffix(a.cfg.BaseURL, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取AllSports比赛失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭AllSports响应体失败: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("AllSports返回状态码%d", resp.StatusCode)
	}

	var out model.AllSportsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析AllSports响应失败: %w", err)
	}
	if out.Success != "" && out.Success != "1" {
		return nil, fmt.Errorf("AllSports返回失败状态: %s", out.Success)
	}

	// 没有比赛时 result 缺省，属于正常情况
	rawMatches := make([]model.RawMatch, 0, len(out.Result))
	for _, item := range out.Result {
		rawMatches = append(rawMatches, model.RawMatch{Feed: FeedName, Payload: item})
	}
	a.logger.Infof("成功获取AllSports比赛共%d条", len(rawMatches))
	return rawMatches, nil
}
