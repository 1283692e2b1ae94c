package stats

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
)

// 数值列可以叫 points 也可以叫 fantasy_score，两者都有时取 points
var pointsColumns = []string{"points", "fantasy_score"}

// CSVSource player_stats.csv
type CSVSource struct {
	path   string
	logger *logrus.Logger
}

func NewCSVSource(path string, logger *logrus.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

func (s *CSVSource) Name() string { return "csv:" + s.path }

func (s *CSVSource) LoadRecords(ctx context.Context) ([]model.StatsRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("打开统计文件失败: %w", err)
	}
	defer f.Close()
	return ParseCSV(ctx, f, s.logger)
}

// ParseCSV 读取表头定位列；player 必填，team/role 可选
func ParseCSV(ctx context.Context, r io.Reader, logger *logrus.Logger) ([]model.StatsRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("统计文件为空")
		}
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	playerIdx, ok := cols["player"]
	if !ok {
		return nil, errors.New("统计文件缺少 player 列")
	}
	pointsIdx := -1
	for _, name := range pointsColumns {
		if idx, ok := cols[name]; ok {
			pointsIdx = idx
			break
		}
	}
	if pointsIdx < 0 {
		return nil, fmt.Errorf("统计文件缺少数值列（%s）", strings.Join(pointsColumns, "/"))
	}
	teamIdx, hasTeam := cols["team"]
	roleIdx, hasRole := cols["role"]

	var records []model.StatsRecord
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("第%d行解析失败: %w", line, err)
		}

		player := cell(row, playerIdx)
		if player == "" {
			continue
		}
		rec := model.StatsRecord{Player: player}
		if hasTeam {
			rec.Team = cell(row, teamIdx)
		}
		if hasRole {
			rec.Role = cell(row, roleIdx)
		}
		if raw := cell(row, pointsIdx); raw != "" {
			points, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				logger.WithFields(logrus.Fields{"line": line, "player": player, "value": raw}).Warn("得分不是数字，按0处理")
			} else {
				rec.Points = points
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// cell 行长度不足时返回空串；姓名只去掉首尾空白，不改大小写
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
