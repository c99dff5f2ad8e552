package commands

import (
	"fmt"

	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "shoplite",
	Short: "shoplite 运维工具",
	Long: `shoplite 运维工具：初始化模拟存储数据，或在终端中浏览商品目录。

配置读取顺序与服务端一致：--config 指定目录下的 config.yml，
其次为 SHOPLITE_ 前缀的环境变量，最后为内置默认值。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute 执行根命令
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

// SetVersionInfo 设置版本信息
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "config.yml 所在目录")
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newBrowseCmd())
}

// loadConfig 加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(viper.New(), configDir, "./etc")
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	return cfg, nil
}
