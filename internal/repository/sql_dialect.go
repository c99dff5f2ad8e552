package repository

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var documentFieldPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// ValidDocumentField 字段名只允许字母数字下划线，避免拼接进 SQL 时被注入
func ValidDocumentField(field string) bool {
	return documentFieldPattern.MatchString(field)
}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// jsonTextExpr 构建 JSON 字段文本提取表达式，兼容 sqlite 与 postgres。
func jsonTextExpr(db *gorm.DB, column, key string) string {
	return jsonTextExprByDialect(dbDialectName(db), column, key)
}

func jsonTextExprByDialect(dialect, column, key string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		// postgres 统一转 jsonb 后再使用 ->> 提取文本
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	default:
		// sqlite 的 json_extract 保留数字类型，转成文本后与查询参数比较
		return fmt.Sprintf("CAST(json_extract(%s, '$.\"%s\"') AS TEXT)", column, key)
	}
}

// buildFieldEqualsCondition 构建多个 JSON 字段等值条件（AND），返回条件与参数。
func buildFieldEqualsCondition(db *gorm.DB, column string, matches []FieldMatch) (string, []interface{}, error) {
	return buildFieldEqualsConditionByDialect(dbDialectName(db), column, matches)
}

func buildFieldEqualsConditionByDialect(dialect, column string, matches []FieldMatch) (string, []interface{}, error) {
	parts := make([]string, 0, len(matches))
	args := make([]interface{}, 0, len(matches))
	for _, match := range matches {
		if !ValidDocumentField(match.Field) {
			return "", nil, fmt.Errorf("invalid document field %q", match.Field)
		}
		parts = append(parts, fmt.Sprintf("%s = ?", jsonTextExprByDialect(dialect, column, match.Field)))
		args = append(args, match.Value)
	}
	return strings.Join(parts, " AND "), args, nil
}
