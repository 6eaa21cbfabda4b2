package client

import (
	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"
	"github.com/vitaliksokil/ch-7-tutorial/contract"
)

type server struct {
	rt *contract.Runtime
}

func NewRouter(rt *contract.Runtime) *gin.Engine {
	s := &server{rt: rt}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(Cors())                                // 使用跨域组件
	r.POST("/postTran", s.postTran)              // 提交一笔合约调用
	r.POST("/query", s.query)                    // 提供链上查询服务
	r.GET("/registerAccount", s.registerAccount) // 注册账户
	return r
}

// 监听用户请求
func ListenRequest(addr string, rt *contract.Runtime) error {
	log.Info(" ---------------------------------------------------------------------------------")
	log.Infof("|  众筹合约节点已启动，监听地址 %s  |", addr)
	log.Info(" ---------------------------------------------------------------------------------")
	return NewRouter(rt).Run(addr)
}
