package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEnUS    = "en-US"
	LocaleZhCN    = "zh-CN"
	DefaultLocale = LocaleEnUS

	// LocaleQueryKey 查询参数显式指定语言
	LocaleQueryKey = "lang"
	// LocaleHeader 请求头显式指定语言
	LocaleHeader = "X-Locale"
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)

	mu       sync.RWMutex
	catalogs = map[string]map[string]string{
		LocaleEnUS: cloneMessages(enUSMessages),
		LocaleZhCN: cloneMessages(zhCNMessages),
	}
)

func cloneMessages(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for key, msg := range src {
		dst[key] = msg
	}
	return dst
}

// ResolveLocale 依次从 lang 参数、X-Locale 请求头与 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale, ok := Normalize(c.Query(LocaleQueryKey)); ok {
		return locale
	}
	if locale, ok := Normalize(c.GetHeader(LocaleHeader)); ok {
		return locale
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// MatchAcceptLanguage 按 Accept-Language 匹配支持的语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeForTag(supportedTags[index])
}

// Normalize 归一化语言标识，无法识别时返回 false
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}
	return localeForTag(supportedTags[index]), true
}

func localeForTag(tag language.Tag) string {
	if tag == language.SimplifiedChinese {
		return LocaleZhCN
	}
	return LocaleEnUS
}

// T 翻译消息键，缺失时回退到默认语言，仍缺失则返回键本身
func T(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Register 注册或覆盖消息
func Register(locale string, messages map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = make(map[string]string, len(messages))
		catalogs[locale] = catalog
	}
	for key, msg := range messages {
		catalog[key] = msg
	}
}
