package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shoplite/internal/models"

	"github.com/fatih/color"
)

func TestPrintProducts(t *testing.T) {
	color.NoColor = true
	discount := 15.0
	products := []models.Product{
		{ID: 2, Name: "Wireless Headphones", Category: "Audio", Price: models.NewMoneyFromFloat(149), Rating: 4.6, DiscountPercentage: &discount},
		{ID: 7, Name: "Bluetooth Speaker", Category: "Audio", Price: models.NewMoneyFromFloat(39.99), Rating: 4.0},
	}
	var out bytes.Buffer
	printProducts(&out, products)
	text := out.String()
	for _, want := range []string{"#2", "Wireless Headphones", "149.00", "-15%", "#7", "39.99", "共 2 件商品"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Count(text, "%") != 1 {
		t.Fatalf("only discounted products show a badge:\n%s", text)
	}

	out.Reset()
	printProducts(&out, nil)
	if !strings.Contains(out.String(), "没有符合条件的商品") {
		t.Fatalf("unexpected empty output: %q", out.String())
	}
}

func TestFormatRating(t *testing.T) {
	cases := map[float64]string{
		4.6: "★★★★★ 4.6",
		4.0: "★★★★☆ 4.0",
		-1:  "☆☆☆☆☆ 0.0",
		9:   "★★★★★ 5.0",
	}
	for rating, want := range cases {
		if got := formatRating(rating); got != want {
			t.Fatalf("formatRating(%v) = %q, want %q", rating, got, want)
		}
	}
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	if !names["seed"] || !names["browse"] {
		t.Fatalf("expected seed and browse commands, got %v", names)
	}
}
