// Package messages holds the user-facing strings for refresh outcomes and
// the terminal UI, in English and Japanese.
package messages

import (
	"fmt"
	"strings"
)

// Language identifies a message catalog.
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"

	DefaultLanguage = English
)

// Catalog is one language's set of strings.
type Catalog struct {
	Language Language

	RefreshSucceeded     string
	refreshSucceededFmt  string
	RefreshFailed        string
	RefreshUnknown       string
	RefreshUnknownDetail string
	StatusFetchFailed    string
	StatusTimeout        string
	RequestFailed        string
	RequestStarted       string

	RefreshButton    string
	RefreshingButton string
	LastSyncPrefix   string
	LastSyncUnknown  string
	Online           string
	Offline          string
}

// RefreshSucceededDetail formats the success detail for n updated records.
func (c *Catalog) RefreshSucceededDetail(n int) string {
	return fmt.Sprintf(c.refreshSucceededFmt, n)
}

// LastSync renders the "last sync" label for value, or the unknown label
// when value is empty.
func (c *Catalog) LastSync(value string) string {
	if value == "" {
		return c.LastSyncPrefix + c.LastSyncUnknown
	}
	return c.LastSyncPrefix + value
}

var english = Catalog{
	Language:             English,
	RefreshSucceeded:     "data refresh completed",
	refreshSucceededFmt:  "%d records have been updated.",
	RefreshFailed:        "data refresh failed",
	RefreshUnknown:       "could not retrieve refresh result",
	RefreshUnknownDetail: "Unknown error details",
	StatusFetchFailed:    "failed to fetch refresh status",
	StatusTimeout:        "timed out waiting for refresh status",
	RequestFailed:        "failed to request refresh",
	RequestStarted:       "refresh started, checking progress…",
	RefreshButton:        "Refresh",
	RefreshingButton:     "Refreshing...",
	LastSyncPrefix:       "Last sync: ",
	LastSyncUnknown:      "Not synced",
	Online:               "Online",
	Offline:              "Offline",
}

var japanese = Catalog{
	Language:             Japanese,
	RefreshSucceeded:     "データ更新が完了しました",
	refreshSucceededFmt:  "%d件のデータを更新しました。",
	RefreshFailed:        "データ更新に失敗しました",
	RefreshUnknown:       "更新ステータスが不明です。",
	RefreshUnknownDetail: "詳細不明のエラー",
	StatusFetchFailed:    "更新状況の取得に失敗しました",
	StatusTimeout:        "更新状況の取得がタイムアウトしました",
	RequestFailed:        "更新リクエストに失敗しました。",
	RequestStarted:       "更新を開始しました。進行状況を確認しています…",
	RefreshButton:        "更新",
	RefreshingButton:     "更新中...",
	LastSyncPrefix:       "最終同期: ",
	LastSyncUnknown:      "未同期",
	Online:               "オンライン",
	Offline:              "オフライン",
}

// For returns the catalog for lang. Unknown languages get English.
// The returned catalog must not be modified.
func For(lang string) *Catalog {
	switch Language(strings.ToLower(strings.TrimSpace(lang))) {
	case Japanese:
		return &japanese
	default:
		return &english
	}
}

// IsSupported reports whether lang has its own catalog.
func IsSupported(lang string) bool {
	switch Language(strings.ToLower(strings.TrimSpace(lang))) {
	case English, Japanese:
		return true
	default:
		return false
	}
}

// Supported lists the available languages.
func Supported() []Language {
	return []Language{English, Japanese}
}
