package repository

import (
	"testing"
)

func TestJSONTextExprByDialectSQLite(t *testing.T) {
	got := jsonTextExprByDialect("sqlite", "body", "name")
	want := "CAST(json_extract(body, '$.\"name\"') AS TEXT)"
	if got != want {
		t.Fatalf("sqlite json expr mismatch, want %s got %s", want, got)
	}
}

func TestJSONTextExprByDialectPostgres(t *testing.T) {
	got := jsonTextExprByDialect("postgres", "body", "name")
	want := "(body::jsonb ->> 'name')"
	if got != want {
		t.Fatalf("postgres json expr mismatch, want %s got %s", want, got)
	}
}

func TestBuildFieldEqualsCondition(t *testing.T) {
	condition, args, err := buildFieldEqualsCondition(nil, "body", []FieldMatch{
		{Field: "name", Value: "alice"},
		{Field: "password", Value: "pw"},
	})
	if err != nil {
		t.Fatalf("build condition failed: %v", err)
	}
	want := "CAST(json_extract(body, '$.\"name\"') AS TEXT) = ? AND CAST(json_extract(body, '$.\"password\"') AS TEXT) = ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
	if len(args) != 2 || args[0] != "alice" || args[1] != "pw" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildFieldEqualsConditionRejectsInjection(t *testing.T) {
	for _, field := range []string{"name'--", "a.b", "", "x y"} {
		if _, _, err := buildFieldEqualsCondition(nil, "body", []FieldMatch{{Field: field, Value: "1"}}); err == nil {
			t.Fatalf("field %q should be rejected", field)
		}
	}
}
