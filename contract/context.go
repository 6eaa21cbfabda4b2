package contract

import (
	"bytes"
	"encoding/json"

	"github.com/cloudflare/cfssl/log"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

// 合约调用上下文
type context struct {
	Name    string            // 当前执行的合约的名称
	Address string            // 合约账户地址
	Method  string            // 被调用的方法
	Args    map[string]string // 参数
	Caller  string            // 调用者地址
	Value   meta.Amount       // 调用合约时的转账金额
}

func newContext(name, address string, task meta.ContractTask) context {
	args := task.Args
	if args == nil {
		args = map[string]string{}
	}
	return context{
		Name:    name,
		Address: address,
		Method:  task.Method,
		Args:    args,
		Caller:  task.Caller,
		Value:   task.Value,
	}
}

func (c context) print() {
	bs, _ := json.Marshal(c)
	var out bytes.Buffer
	_ = json.Indent(&out, bs, "", "\t")
	log.Debugf("当前合约调用的context: %v", out.String())
}
