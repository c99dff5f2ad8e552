package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shoplite/internal/models"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	faint  = color.New(color.Faint)
)

func printSuccess(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ "+format+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! "+format+"\n", a...)
}

func printError(err error) {
	red.Fprintf(os.Stderr, "✗ %v\n", err)
}

// formatRating 评分展示为五星制
func formatRating(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(rating + 0.5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" %.1f", rating)
}

// printProducts 按顺序输出商品列表
func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		yellow.Fprintln(w, "没有符合条件的商品")
		return
	}
	for _, product := range products {
		cyan.Fprintf(w, "#%-4s %s", product.ID.String(), product.Name)
		faint.Fprintf(w, "  [%s]\n", product.Category)
		green.Fprintf(w, "      %s", product.Price.String())
		if product.HasDiscount() {
			yellow.Fprintf(w, "  -%.0f%%", *product.DiscountPercentage)
		}
		fmt.Fprintf(w, "  %s\n", formatRating(product.Rating))
	}
	faint.Fprintf(w, "共 %d 件商品\n", len(products))
}
