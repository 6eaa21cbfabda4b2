package meta

type HttpResponse struct {
	Error string      `json:"error"` // 如果不为空代表错误信息
	Data  interface{} `json:"data"`
	Code  int         `json:"code"` // vue-element-admin的前端校验码，必须为20000
}

// 用户提交的合约调用
type PostTran struct {
	From   string `json:"from"`
	Method string `json:"method"`
	Args   string `json:"args"`  // json编码的参数
	Value  string `json:"value"` // 十进制字符串，可为空
}

type Query struct {
	Type       string   `json:"type"`
	Parameters []string `json:"parameters"`
}
