package cricapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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

const FeedName = "cricapi"

func init() {
	adapter.Register(FeedName, NewCricAPIAdapter)
}

type Adapter struct {
	cfg        *config.FeedConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewCricAPIAdapter(cfg *config.FeedConfig, logger *logrus.Logger) interfaces.FeedAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现FeedAdapter接口 ==========
func (a *Adapter) GetName() string {
	return FeedName
}

// FetchMatches 拉取 currentMatches；对 hasSquad 但没有内嵌名单的比赛补拉 match_squad
func (a *Adapter) FetchMatches(ctx context.Context) ([]model.RawMatch, error) {
	list, err := a.get(ctx, "currentMatches", url.Values{"offset": {"0"}})
	if err != nil {
		return nil, fmt.Errorf("获取CricAPI比赛列表失败: %w", err)
	}

	rawMatches := make([]model.RawMatch, 0, len(list))
	for _, item := range list {
		payload := item
		if id, ok := needsSquad(item); ok {
			merged, err := a.attachSquads(ctx, id, item)
			if err != nil {
				a.logger.WithError(err).WithField("match_id", id).Warn("补拉CricAPI名单失败，按未公布处理")
			} else {
				payload = merged
			}
		}
		rawMatches = append(rawMatches, model.RawMatch{Feed: FeedName, Payload: payload})
	}

	a.logger.Infof("成功获取CricAPI比赛共%d条", len(rawMatches))
	return rawMatches, nil
}

// needsSquad 只看 id/hasSquad/teamInfo[].players，形态不对时交给归一化去判定
func needsSquad(item json.RawMessage) (string, bool) {
	var head struct {
		ID       string `json:"id"`
		HasSquad bool   `json:"hasSquad"`
		TeamInfo []struct {
			Players []json.RawMessage `json:"players"`
		} `json:"teamInfo"`
	}
	if err := json.Unmarshal(item, &head); err != nil || head.ID == "" || !head.HasSquad {
		return "", false
	}
	for _, ti := range head.TeamInfo {
		if len(ti.Players) > 0 {
			return "", false
		}
	}
	return head.ID, true
}

// attachSquads 把 match_squad 的结果作为 squads 字段并入原始记录（形态 b）
func (a *Adapter) attachSquads(ctx context.Context, id string, item json.RawMessage) (json.RawMessage, error) {
	squads, err := a.get(ctx, "match_squad", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(squads)
	if err != nil {
		return nil, err
	}
	fields["squads"] = encoded
	return json.Marshal(fields)
}

func (a *Adapter) get(ctx context.Context, path string, query url.Values) ([]json.RawMessage, error) {
	query.Set("apikey", a.cfg.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", strings.TrimSuffix(a.cfg.BaseURL, "/"), path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭CricAPI响应体失败: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("CricAPI返回状态码%d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out model.CricAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析CricAPI响应失败: %w", err)
	}
	if !strings.EqualFold(out.Status, "success") {
		return nil, fmt.Errorf("CricAPI返回失败状态: %s %s", out.Status, out.Reason)
	}
	return out.Data, nil
}
