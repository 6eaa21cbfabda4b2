package meta

// 一次合约调用
type ContractTask struct {
	Method string            // 被调用的方法
	Args   map[string]string // 参数
	Caller string            // 调用者地址
	Value  Amount            // 调用合约时附带的转账金额
}

// 合约执行后需要由链完成的转账
type Transfer struct {
	To     string `json:"to"`
	Amount Amount `json:"amount"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// 转账执行回执
type TransferReceipt struct {
	FundraiserID uint8  `json:"fundraiser_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	Amount       Amount `json:"amount"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}
