package commands

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shoplite/internal/cache"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/provider"
	"github.com/shoplite/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yml
var defaultFixture []byte

// seedFixture 模拟存储初始数据
type seedFixture struct {
	Users    []map[string]interface{} `yaml:"users"`
	Products []map[string]interface{} `yaml:"products"`
}

func newSeedCmd() *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "用 YAML 夹具重建模拟存储的 users 与 products",
		Long: `用 YAML 夹具重建模拟存储的 users 与 products 集合。

未指定 --fixture 时使用内置的演示数据。已存在的文档会被整体替换。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := defaultFixture
			if fixturePath != "" {
				content, err := os.ReadFile(fixturePath)
				if err != nil {
					return fmt.Errorf("读取夹具失败: %w", err)
				}
				raw = content
			}
			fixture, err := parseFixture(raw)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			container := provider.NewContainer(cfg)
			defer container.Close()
			if err := container.InitMockStore(); err != nil {
				return fmt.Errorf("初始化模拟存储失败: %w", err)
			}
			if err := seedStore(cmd.OutOrStdout(), container.StoreService, fixture); err != nil {
				return err
			}
			// 商品被重建后清掉 API 侧的目录缓存
			if err := cache.InvalidateCatalog(cmd.Context(), fixture.productIDs()...); err != nil {
				printWarning(cmd.ErrOrStderr(), "清除商品缓存失败: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "YAML 夹具路径")
	return cmd
}

// productIDs 夹具中的商品ID，无法解析的跳过
func (f *seedFixture) productIDs() []models.ProductID {
	ids := make([]models.ProductID, 0, len(f.Products))
	for _, item := range f.Products {
		encoded, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var product models.Product
		if err := json.Unmarshal(encoded, &product); err != nil || product.ID <= 0 {
			continue
		}
		ids = append(ids, product.ID)
	}
	return ids
}

func parseFixture(raw []byte) (*seedFixture, error) {
	var fixture seedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("解析夹具失败: %w", err)
	}
	if len(fixture.Users) == 0 && len(fixture.Products) == 0 {
		return nil, fmt.Errorf("夹具为空")
	}
	return &fixture, nil
}

func seedStore(w io.Writer, store *service.StoreService, fixture *seedFixture) error {
	if store == nil || fixture == nil {
		return fmt.Errorf("store not initialized")
	}
	collections := []struct {
		name string
		docs []map[string]interface{}
	}{
		{name: models.CollectionUsers, docs: fixture.Users},
		{name: models.CollectionProducts, docs: fixture.Products},
	}
	for _, item := range collections {
		count, err := store.Seed(item.name, item.docs)
		if err != nil {
			return fmt.Errorf("写入 %s 失败: %w", item.name, err)
		}
		printSuccess(w, "%s: %d 条", item.name, count)
	}
	return nil
}
