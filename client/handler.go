package client

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		origin := c.Request.Header.Get("Origin")

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization") //自定义 Header
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if method == "OPTIONS" {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// 提交一笔合约调用，调用者为 from，附带的转账为 value
func (s *server) postTran(ctx *gin.Context) {
	b, err := ctx.GetRawData()
	if err != nil {
		log.Error("[postTran],read body err:", err)
		ctx.JSON(http.StatusOK, errResponse("读取请求失败"))
		return
	}
	log.Infof("[client] 收到一笔交易: %s", string(b))

	pt := meta.PostTran{}
	if err := json.Unmarshal(b, &pt); err != nil {
		log.Error("[postTran],json decode err:", err)
		ctx.JSON(http.StatusOK, errResponse("交易格式错误"))
		return
	}

	// 检查交易参数
	if msg, ok := checkTranParameters(&pt); !ok {
		log.Info(msg)
		ctx.JSON(http.StatusOK, errResponse(msg))
		return
	}

	args := map[string]string{}
	if pt.Args != "" {
		if err := json.Unmarshal([]byte(pt.Args), &args); err != nil {
			log.Error("[postTran] json err:", err)
			ctx.JSON(http.StatusOK, errResponse("合约参数格式错误"))
			return
		}
	}
	value := meta.ZeroAmount
	if pt.Value != "" {
		v, err := meta.ParseAmount(pt.Value)
		if err != nil {
			ctx.JSON(http.StatusOK, errResponse("转账金额格式错误"))
			return
		}
		value = v
	}

	res, err := s.rt.Invoke(meta.ContractTask{
		Method: pt.Method,
		Args:   args,
		Caller: pt.From,
		Value:  value,
	})
	if err != nil {
		log.Infof("[postTran] %s 调用 %s 失败: %s", pt.From, pt.Method, err)
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(res))
}

// 链上信息query服务
func (s *server) query(ctx *gin.Context) {
	data, err := ctx.GetRawData()
	if err != nil {
		log.Error("[query],read body err:", err)
		ctx.JSON(http.StatusOK, errResponse("读取请求失败"))
		return
	}
	log.Infof("[client] 收到查询请求: %s", string(data))

	q := meta.Query{}
	if err := json.Unmarshal(data, &q); err != nil {
		log.Error("[query],json decode err:", err)
		ctx.JSON(http.StatusOK, errResponse("Query参数有误!"))
		return
	}

	var response meta.HttpResponse
	switch q.Type {
	case "getAllFundraisers":
		response = s.invokeView("GetAllFundraisers", nil)

	case "getFundraiser": // 获取指定id的众筹项目
		if len(q.Parameters) < 1 {
			response = errResponse("参数错误")
			break
		}
		response = s.invokeView("GetFundraiserByID", map[string]string{"id": q.Parameters[0]})

	case "getAccount":
		if len(q.Parameters) < 1 {
			response = errResponse("参数错误")
			break
		}
		acc, ok := s.rt.GetAccount(q.Parameters[0])
		if !ok {
			response = errResponse("账户不存在")
		} else {
			response = goodResponse(acc)
		}

	case "getAllAccounts": // 获取所有的账户
		response = goodResponse(s.rt.GetAllAccounts())

	case "getReceipts": // 获取转账回执
		receipts, err := s.rt.Receipts()
		if err != nil {
			response = errResponse(err.Error())
		} else {
			response = goodResponse(receipts)
		}

	default:
		log.Info("Query参数有误!")
		response = errResponse("Query参数有误!")
	}

	ctx.JSON(http.StatusOK, response)
}

func (s *server) invokeView(method string, args map[string]string) meta.HttpResponse {
	res, err := s.rt.Invoke(meta.ContractTask{Method: method, Args: args})
	if err != nil {
		log.Infof("[query] %s 失败: %s", method, err)
		return errResponse(err.Error())
	}
	return goodResponse(res)
}

// 账户注册，未指定地址时随机生成
func (s *server) registerAccount(ctx *gin.Context) {
	address := ctx.Query("address")
	if address == "" {
		address = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	acc, err := s.rt.RegisterAccount(address)
	if err != nil {
		log.Errorf("[registerAccount] %s", err)
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	log.Infof("account address: %s", acc.Address)
	ctx.JSON(http.StatusOK, goodResponse(acc))
}

// 返回正常结果
func goodResponse(data interface{}) meta.HttpResponse {
	res := meta.HttpResponse{
		Data: data,
		Code: 20000,
	}
	return res
}

// 出现异常，返回异常信息
func errResponse(errMsg string) meta.HttpResponse {
	res := meta.HttpResponse{
		Error: errMsg,
		Data:  "",
		Code:  20000,
	}
	return res
}

// 检查交易参数
func checkTranParameters(pt *meta.PostTran) (string, bool) {
	if pt.From == "" {
		return "发起地址不能为空", false
	}
	if pt.Method == "" {
		return "调用方法不能为空", false
	}
	return "", true
}
