package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/config"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/server"
)

var (
	port    = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Heritage Guiding - 线路内容批量交换工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 首次运行时落一份配置文件，便于后续手工调整
	if _, statErr := os.Stat(config.ConfigPath()); os.IsNotExist(statErr) {
		if saveErr := config.SaveConfig(cfg); saveErr != nil {
			log.Printf("写出配置文件失败: %v", saveErr)
		}
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("创建数据目录失败: %v", err)
	} else {
		fmt.Printf("数据目录: %s\n", dir)
	}

	// 创建服务器
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		log.Printf("关闭存储失败: %v", err)
	}
}
