package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplite/internal/provider"
	"github.com/shoplite/internal/service"

	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var (
		categories []string
		sortMode   string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "从远端存储拉取商品并按分类与排序输出",
		Long: `从远端存储拉取商品目录，按分类筛选后排序输出。

Examples:
  shoplite browse
  shoplite browse --category Audio --category Gaming --sort price-asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := service.NewFilterSelection(categories, sortMode)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			container := provider.NewContainer(cfg)
			defer container.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			products, err := container.ProductService.Browse(ctx, selection)
			if err != nil {
				return fmt.Errorf("拉取商品失败: %w", err)
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "分类，可重复指定")
	cmd.Flags().StringVarP(&sortMode, "sort", "s", "", "排序方式: default, price-asc, price-desc, rating-asc, rating-desc")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "请求超时")
	return cmd
}
