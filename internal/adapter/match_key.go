package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9\s]+`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// buildMatchKey 上游未给 ID 时，用规范化队名 + 比赛日期生成稳定键
func buildMatchKey(home, away string, date time.Time) string {
	day := ""
	if !date.IsZero() {
		day = date.Format(dateLayout)
	}
	data := fmt.Sprintf("%s|%s|%s", normalizeName(home), normalizeName(away), day)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:32]
}

func normalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphaNum.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
