// @title E-Learning Tracker API
// @version 1.0
// @description 学习进度、测验评分与合格通知服务。

// @host localhost:3000
// @BasePath /elearning/api

package main

import (
	"elearning_backend/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
