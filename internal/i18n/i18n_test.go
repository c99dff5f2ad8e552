package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newContext(target string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("GET", target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	c.Request = req
	return c
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		headers map[string]string
		want    string
	}{
		{name: "default", target: "/", want: LocaleEnUS},
		{name: "accept language zh", target: "/", headers: map[string]string{"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8"}, want: LocaleZhCN},
		{name: "accept language plain zh", target: "/", headers: map[string]string{"Accept-Language": "zh"}, want: LocaleZhCN},
		{name: "accept language unsupported", target: "/", headers: map[string]string{"Accept-Language": "fr-FR"}, want: LocaleEnUS},
		{name: "header overrides accept", target: "/", headers: map[string]string{"Accept-Language": "zh-CN", LocaleHeader: "en"}, want: LocaleEnUS},
		{name: "query overrides header", target: "/?lang=zh-CN", headers: map[string]string{LocaleHeader: "en-US"}, want: LocaleZhCN},
		{name: "invalid query ignored", target: "/?lang=!!", headers: map[string]string{"Accept-Language": "zh-CN"}, want: LocaleZhCN},
	}
	for _, tc := range cases {
		if got := ResolveLocale(newContext(tc.target, tc.headers)); got != tc.want {
			t.Fatalf("%s: want %s got %s", tc.name, tc.want, got)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleZhCN, "error.cart_empty"); got != "购物车为空" {
		t.Fatalf("unexpected zh message %q", got)
	}
	Register(LocaleEnUS, map[string]string{"test.only_en": "only english"})
	if got := T(LocaleZhCN, "test.only_en"); got != "only english" {
		t.Fatalf("missing key should fall back to default locale, got %q", got)
	}
	if got := T("de-DE", "error.missing_key"); got != "error.missing_key" {
		t.Fatalf("unknown key should return itself, got %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range enUSMessages {
		if _, ok := zhCNMessages[key]; !ok {
			t.Fatalf("zh-CN missing %s", key)
		}
	}
	for key := range zhCNMessages {
		if _, ok := enUSMessages[key]; !ok {
			t.Fatalf("en-US missing %s", key)
		}
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEnUS, "error.login_too_many", 30); got != "Too many login attempts, please retry in 30 seconds" {
		t.Fatalf("unexpected formatted message %q", got)
	}
}
