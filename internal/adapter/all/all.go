// Package all 引入即注册所有内置数据源适配器
package all

import (
	_ "BestXI/internal/adapter/allsports"
	_ "BestXI/internal/adapter/cricapi"
)
